// Package redisstore is the production ResourceStore. Records are JSON
// values with a PX TTL anchored at createdAt plus the retention window, so
// Redis itself retires expired records. Secondary indexes are sorted sets
// (owner, scored by creation time) and sets (charts per file). Deletion
// notifications ride on Redis keyspace events, which are fire-and-forget:
// the reconciler sweep covers anything they miss.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/anthanhphan/go-sheet-charts/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 256

// Store implements port.ResourceStore on a single Redis database.
type Store struct {
	client  *redis.Client
	db      int
	breaker *resilience.CircuitBreaker
}

var _ port.ResourceStore = (*Store)(nil)

// New wraps an existing client. db must match the client's logical database;
// it selects the keyspace-notification channels.
func New(client *redis.Client, db int) *Store {
	return &Store{
		client: client,
		db:     db,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "redis-store",
			FailureThreshold: 5,
			OpenTimeout:      5 * time.Second,
		}),
	}
}

// EnsureNotifications enables generic and expired keyevent notifications.
// Idempotent; existing flags are preserved. Run once at startup.
func (s *Store) EnsureNotifications(ctx context.Context) error {
	res, err := s.client.ConfigGet(ctx, "notify-keyspace-events").Result()
	if err != nil {
		return fmt.Errorf("%w: read notify config: %v", port.ErrStoreUnavailable, err)
	}

	current := res["notify-keyspace-events"]
	flags := current
	for _, f := range []string{"E", "g", "x"} {
		if !strings.Contains(flags, f) {
			flags += f
		}
	}
	if flags == current {
		return nil
	}

	if err := s.client.ConfigSet(ctx, "notify-keyspace-events", flags).Err(); err != nil {
		return fmt.Errorf("%w: set notify config: %v", port.ErrStoreUnavailable, err)
	}
	return nil
}

// SubscribeDeletions translates keyevent messages into deletion events.
func (s *Store) SubscribeDeletions(ctx context.Context) (<-chan port.DeletionEvent, error) {
	sub := s.client.Subscribe(ctx, eventChannels(s.db)...)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("%w: subscribe: %v", port.ErrStoreUnavailable, err)
	}

	out := make(chan port.DeletionEvent, 64)
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				ev, recognized := parseEventKey(msg.Payload)
				if !recognized {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// do runs fn behind the circuit breaker and maps transport failures to
// ErrStoreUnavailable. fn must only return infrastructure errors; domain
// outcomes (not found, duplicate) are decided by the caller from captured
// results so they never trip the breaker.
func (s *Store) do(ctx context.Context, op string, fn func(context.Context) error) error {
	err := s.breaker.Execute(ctx, fn)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", port.ErrStoreUnavailable, op, err)
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %s: %v", port.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", port.ErrStoreUnavailable, op, err)
}

// recordTTL computes the remaining lifetime from the expiry anchor. Records
// are created with createdAt=now, so a non-positive remainder only occurs
// with a skewed clock; clamp instead of storing an immortal key.
func recordTTL(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Millisecond
	}
	return ttl
}

// scanKeys collects all keys matching pattern.
func (s *Store) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

// pruneIndex drops index members whose records have vanished through TTL.
// Best-effort; failures are logged and retried implicitly on the next list.
func (s *Store) pruneIndex(key string, members []string) {
	if len(members) == 0 {
		return
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.client.ZRem(ctx, key, args...).Err(); err != nil {
		logger.Warnw("Index prune failed", "index", key, "members", len(members), "error", err.Error())
	}
}
