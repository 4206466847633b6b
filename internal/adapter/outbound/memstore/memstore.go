// Package memstore is an in-process ResourceStore used by tests and the
// local config profile. It honors the same contract as the Redis adapter:
// records past their expiry anchor are unreachable on read even before the
// janitor sweep removes them, and removals fan out as best-effort deletion
// events.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
)

const defaultScanInterval = 30 * time.Second

// Options tunes the store; zero values pick defaults.
type Options struct {
	// ScanInterval is the janitor's sweep period.
	ScanInterval time.Duration

	// Now overrides the clock, for expiry tests.
	Now func() time.Time
}

// Store implements port.ResourceStore in memory.
type Store struct {
	mu     sync.RWMutex
	files  map[string]*domain.File
	charts map[string]*domain.Chart
	subs   []chan port.DeletionEvent
	now    func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

var _ port.ResourceStore = (*Store)(nil)

// New creates the store and starts its janitor goroutine.
func New(opts Options) *Store {
	if opts.ScanInterval <= 0 {
		opts.ScanInterval = defaultScanInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{
		files:  make(map[string]*domain.File),
		charts: make(map[string]*domain.Chart),
		now:    opts.Now,
		stop:   make(chan struct{}),
	}
	go s.janitor(opts.ScanInterval)
	return s
}

func (s *Store) PutFile(_ context.Context, f *domain.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[f.ID]; ok {
		return port.ErrDuplicateKey
	}
	s.files[f.ID] = f.Clone()
	return nil
}

func (s *Store) GetFile(_ context.Context, id, ownerID string) (*domain.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok || s.expired(f.ExpiresAt()) || f.OwnerID != ownerID {
		return nil, port.ErrNotFound
	}
	return f.Clone(), nil
}

func (s *Store) GetFileAny(_ context.Context, id string) (*domain.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok || s.expired(f.ExpiresAt()) {
		return nil, port.ErrNotFound
	}
	return f.Clone(), nil
}

func (s *Store) ListFiles(_ context.Context, ownerID string, limit int) ([]*domain.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.File
	for _, f := range s.files {
		if f.OwnerID == ownerID && !s.expired(f.ExpiresAt()) {
			out = append(out, f.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) UpdateFileStatus(_ context.Context, id string, status domain.FileStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.files[id]
	if !ok || s.expired(f.ExpiresAt()) {
		return port.ErrNotFound
	}
	f.Status = status
	return nil
}

func (s *Store) DeleteFile(_ context.Context, id string) error {
	s.mu.Lock()
	f, ok := s.files[id]
	if ok {
		delete(s.files, id)
	}
	s.mu.Unlock()

	if !ok || s.expired(f.ExpiresAt()) {
		return port.ErrNotFound
	}
	s.emit(port.DeletionEvent{Kind: port.KindFile, ID: id})
	return nil
}

func (s *Store) FileExists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	return ok && !s.expired(f.ExpiresAt()), nil
}

func (s *Store) ScanFiles(_ context.Context) ([]*domain.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.File, 0, len(s.files))
	for _, f := range s.files {
		if !s.expired(f.ExpiresAt()) {
			out = append(out, f.Clone())
		}
	}
	return out, nil
}

func (s *Store) PutChart(_ context.Context, c *domain.Chart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charts[c.ID]; ok {
		return port.ErrDuplicateKey
	}
	s.charts[c.ID] = c.Clone()
	return nil
}

func (s *Store) GetChart(_ context.Context, id, ownerID string) (*domain.Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.charts[id]
	if !ok || s.expired(c.ExpiresAt()) || c.OwnerID != ownerID {
		return nil, port.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *Store) GetChartAny(_ context.Context, id string) (*domain.Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.charts[id]
	if !ok || s.expired(c.ExpiresAt()) {
		return nil, port.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *Store) ListCharts(_ context.Context, ownerID string, limit int) ([]*domain.Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Chart
	for _, c := range s.charts {
		if c.OwnerID == ownerID && !s.expired(c.ExpiresAt()) {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListChartIDsByFile(_ context.Context, fileID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, c := range s.charts {
		if c.FileID == fileID && !s.expired(c.ExpiresAt()) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) DeleteChart(_ context.Context, id string) error {
	s.mu.Lock()
	c, ok := s.charts[id]
	if ok {
		delete(s.charts, id)
	}
	s.mu.Unlock()

	if !ok || s.expired(c.ExpiresAt()) {
		return port.ErrNotFound
	}
	s.emit(port.DeletionEvent{Kind: port.KindChart, ID: id})
	return nil
}

func (s *Store) ScanCharts(_ context.Context) ([]*domain.Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Chart, 0, len(s.charts))
	for _, c := range s.charts {
		if !s.expired(c.ExpiresAt()) {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (s *Store) SubscribeDeletions(ctx context.Context) (<-chan port.DeletionEvent, error) {
	ch := make(chan port.DeletionEvent, 64)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.stop:
		}
		s.mu.Lock()
		for i, sub := range s.subs {
			if sub == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}()

	return ch, nil
}

func (s *Store) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

// expired treats the boundary instant itself as still reachable.
func (s *Store) expired(deadline time.Time) bool {
	return s.now().After(deadline)
}

// emit delivers an event to every subscriber without blocking. A full
// subscriber simply misses the event; delivery is best-effort by contract.
func (s *Store) emit(ev port.DeletionEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subs {
		select {
		case sub <- ev:
		default:
		}
	}
}

// janitor physically removes expired records on a fixed scan interval and
// emits their deletion events, mirroring a store-side TTL sweep.
func (s *Store) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweepExpired()
		}
	}
}

func (s *Store) sweepExpired() {
	var evs []port.DeletionEvent

	s.mu.Lock()
	for id, f := range s.files {
		if s.expired(f.ExpiresAt()) {
			delete(s.files, id)
			evs = append(evs, port.DeletionEvent{Kind: port.KindFile, ID: id})
		}
	}
	for id, c := range s.charts {
		if s.expired(c.ExpiresAt()) {
			delete(s.charts, id)
			evs = append(evs, port.DeletionEvent{Kind: port.KindChart, ID: id})
		}
	}
	s.mu.Unlock()

	for _, ev := range evs {
		s.emit(ev)
	}
}
