package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/redis/go-redis/v9"
)

func (s *Store) PutChart(ctx context.Context, c *domain.Chart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode chart %s: %w", c.ID, err)
	}

	var inserted bool
	putErr := s.do(ctx, "put chart", func(cc context.Context) error {
		ok, err := s.client.SetNX(cc, chartKey(c.ID), data, recordTTL(c.ExpiresAt())).Result()
		if err != nil {
			return err
		}
		inserted = ok
		if !ok {
			return nil
		}

		pipe := s.client.TxPipeline()
		pipe.ZAdd(cc, chartOwnerIndex(c.OwnerID), redis.Z{
			Score:  float64(c.CreatedAt.UnixMilli()),
			Member: c.ID,
		})
		pipe.SAdd(cc, chartFileIndex(c.FileID), c.ID)
		_, err = pipe.Exec(cc)
		return err
	})
	if putErr != nil {
		return putErr
	}
	if !inserted {
		return port.ErrDuplicateKey
	}
	return nil
}

func (s *Store) GetChart(ctx context.Context, id, ownerID string) (*domain.Chart, error) {
	c, err := s.GetChartAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, port.ErrNotFound
	}
	return c, nil
}

func (s *Store) GetChartAny(ctx context.Context, id string) (*domain.Chart, error) {
	var raw []byte
	err := s.do(ctx, "get chart", func(cc context.Context) error {
		b, err := s.client.Get(cc, chartKey(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		raw = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, port.ErrNotFound
	}

	var c domain.Chart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode chart %s: %w", id, err)
	}
	return &c, nil
}

func (s *Store) ListCharts(ctx context.Context, ownerID string, limit int) ([]*domain.Chart, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	var ids []string
	var values []any
	err := s.do(ctx, "list charts", func(cc context.Context) error {
		res, err := s.client.ZRevRange(cc, chartOwnerIndex(ownerID), 0, stop).Result()
		if err != nil {
			return err
		}
		ids = res
		if len(ids) == 0 {
			return nil
		}

		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = chartKey(id)
		}
		values, err = s.client.MGet(cc, keys...).Result()
		return err
	})
	if err != nil {
		return nil, err
	}

	charts := make([]*domain.Chart, 0, len(ids))
	var stale []string
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var c domain.Chart
		if err := json.Unmarshal([]byte(str), &c); err != nil {
			return nil, fmt.Errorf("decode chart %s: %w", ids[i], err)
		}
		charts = append(charts, &c)
	}
	s.pruneIndex(chartOwnerIndex(ownerID), stale)
	return charts, nil
}

// ListChartIDsByFile is self-pruning: members whose chart keys have expired
// are dropped from the set before the remainder is returned.
func (s *Store) ListChartIDsByFile(ctx context.Context, fileID string) ([]string, error) {
	var live []string
	err := s.do(ctx, "list charts by file", func(cc context.Context) error {
		members, err := s.client.SMembers(cc, chartFileIndex(fileID)).Result()
		if err != nil {
			return err
		}
		if len(members) == 0 {
			return nil
		}

		var stale []any
		for _, id := range members {
			n, err := s.client.Exists(cc, chartKey(id)).Result()
			if err != nil {
				return err
			}
			if n > 0 {
				live = append(live, id)
			} else {
				stale = append(stale, id)
			}
		}
		if len(stale) > 0 {
			if err := s.client.SRem(cc, chartFileIndex(fileID), stale...).Err(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return live, nil
}

func (s *Store) DeleteChart(ctx context.Context, id string) error {
	c, err := s.GetChartAny(ctx, id)
	if err != nil {
		return err
	}

	return s.do(ctx, "delete chart", func(cc context.Context) error {
		pipe := s.client.TxPipeline()
		pipe.Del(cc, chartKey(id))
		pipe.ZRem(cc, chartOwnerIndex(c.OwnerID), id)
		pipe.SRem(cc, chartFileIndex(c.FileID), id)
		_, err := pipe.Exec(cc)
		return err
	})
}

func (s *Store) ScanCharts(ctx context.Context) ([]*domain.Chart, error) {
	return scanRecords[domain.Chart](ctx, s, chartKeyPrefix+"*", "scan charts")
}
