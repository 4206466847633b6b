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

func (s *Store) PutFile(ctx context.Context, f *domain.File) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode file %s: %w", f.ID, err)
	}

	var inserted bool
	putErr := s.do(ctx, "put file", func(c context.Context) error {
		ok, err := s.client.SetNX(c, fileKey(f.ID), data, recordTTL(f.ExpiresAt())).Result()
		if err != nil {
			return err
		}
		inserted = ok
		if !ok {
			return nil
		}
		return s.client.ZAdd(c, fileOwnerIndex(f.OwnerID), redis.Z{
			Score:  float64(f.CreatedAt.UnixMilli()),
			Member: f.ID,
		}).Err()
	})
	if putErr != nil {
		return putErr
	}
	if !inserted {
		return port.ErrDuplicateKey
	}
	return nil
}

func (s *Store) GetFile(ctx context.Context, id, ownerID string) (*domain.File, error) {
	f, err := s.GetFileAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != ownerID {
		return nil, port.ErrNotFound
	}
	return f, nil
}

func (s *Store) GetFileAny(ctx context.Context, id string) (*domain.File, error) {
	var raw []byte
	err := s.do(ctx, "get file", func(c context.Context) error {
		b, err := s.client.Get(c, fileKey(id)).Bytes()
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

	var f domain.File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode file %s: %w", id, err)
	}
	return &f, nil
}

func (s *Store) ListFiles(ctx context.Context, ownerID string, limit int) ([]*domain.File, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	var ids []string
	var values []any
	err := s.do(ctx, "list files", func(c context.Context) error {
		res, err := s.client.ZRevRange(c, fileOwnerIndex(ownerID), 0, stop).Result()
		if err != nil {
			return err
		}
		ids = res
		if len(ids) == 0 {
			return nil
		}

		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = fileKey(id)
		}
		values, err = s.client.MGet(c, keys...).Result()
		return err
	})
	if err != nil {
		return nil, err
	}

	files := make([]*domain.File, 0, len(ids))
	var stale []string
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Record expired under the index entry.
			stale = append(stale, ids[i])
			continue
		}
		var f domain.File
		if err := json.Unmarshal([]byte(str), &f); err != nil {
			return nil, fmt.Errorf("decode file %s: %w", ids[i], err)
		}
		files = append(files, &f)
	}
	s.pruneIndex(fileOwnerIndex(ownerID), stale)
	return files, nil
}

// UpdateFileStatus is a read-modify-write without a lock. The only writer
// besides creation is the status flip, so a lost update cannot corrupt the
// record, and KEEPTTL preserves the expiry anchor.
func (s *Store) UpdateFileStatus(ctx context.Context, id string, status domain.FileStatus) error {
	f, err := s.GetFileAny(ctx, id)
	if err != nil {
		return err
	}
	f.Status = status

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode file %s: %w", id, err)
	}
	return s.do(ctx, "update file status", func(c context.Context) error {
		return s.client.Set(c, fileKey(id), data, redis.KeepTTL).Err()
	})
}

func (s *Store) DeleteFile(ctx context.Context, id string) error {
	f, err := s.GetFileAny(ctx, id)
	if err != nil {
		return err
	}

	return s.do(ctx, "delete file", func(c context.Context) error {
		pipe := s.client.TxPipeline()
		pipe.Del(c, fileKey(id))
		pipe.ZRem(c, fileOwnerIndex(f.OwnerID), id)
		_, err := pipe.Exec(c)
		return err
	})
}

func (s *Store) FileExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.do(ctx, "file exists", func(c context.Context) error {
		n, err := s.client.Exists(c, fileKey(id)).Result()
		if err != nil {
			return err
		}
		exists = n > 0
		return nil
	})
	return exists, err
}

func (s *Store) ScanFiles(ctx context.Context) ([]*domain.File, error) {
	return scanRecords[domain.File](ctx, s, fileKeyPrefix+"*", "scan files")
}

// scanRecords walks a key namespace and decodes every live record. Keys can
// expire between SCAN and MGET; those holes are skipped.
func scanRecords[T any](ctx context.Context, s *Store, pattern, op string) ([]*T, error) {
	var out []*T
	err := s.do(ctx, op, func(c context.Context) error {
		keys, err := s.scanKeys(c, pattern)
		if err != nil {
			return err
		}

		for start := 0; start < len(keys); start += scanBatch {
			end := start + scanBatch
			if end > len(keys) {
				end = len(keys)
			}
			values, err := s.client.MGet(c, keys[start:end]...).Result()
			if err != nil {
				return err
			}
			for _, v := range values {
				str, ok := v.(string)
				if !ok {
					continue
				}
				rec := new(T)
				if err := json.Unmarshal([]byte(str), rec); err != nil {
					return err
				}
				out = append(out, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
