package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
)

// clock is a lockable test time source shared with the janitor goroutine.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func newStore(t *testing.T, opts Options) *Store {
	t.Helper()
	if opts.ScanInterval == 0 {
		opts.ScanInterval = time.Hour
	}
	s := New(opts)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func file(id, owner string, createdAt time.Time) *domain.File {
	return &domain.File{
		ID: id, OwnerID: owner, Name: id + ".csv",
		Type: domain.FileTypeCSV, Size: 10,
		Status: domain.StatusProcessed, CreatedAt: createdAt,
	}
}

func chart(id, owner, fileID string, createdAt time.Time) *domain.Chart {
	return &domain.Chart{
		ID: id, OwnerID: owner, FileID: fileID,
		Type: domain.ChartTypeBar, Dimension: domain.Dimension2D,
		Data: []domain.Point{{"x": 1, "y": 2}}, CreatedAt: createdAt,
	}
}

func TestStore_PutFile_RejectsDuplicateID(t *testing.T) {
	s := newStore(t, Options{})
	now := time.Now()

	if err := s.PutFile(context.Background(), file("f1", "u1", now)); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := s.PutFile(context.Background(), file("f1", "u2", now)); !errors.Is(err, port.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestStore_Reads_AreOwnerScoped(t *testing.T) {
	s := newStore(t, Options{})
	now := time.Now()
	_ = s.PutFile(context.Background(), file("f1", "u1", now))
	_ = s.PutChart(context.Background(), chart("c1", "u1", "f1", now))

	if _, err := s.GetFile(context.Background(), "f1", "u2"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("foreign file read: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetChart(context.Background(), "c1", "u2"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("foreign chart read: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetFileAny(context.Background(), "f1"); err != nil {
		t.Errorf("unscoped read must succeed, got %v", err)
	}
}

func TestStore_ExpiredRecordsAreUnreachable(t *testing.T) {
	ck := &clock{t: time.Now()}
	s := newStore(t, Options{Now: ck.now})

	created := ck.now()
	_ = s.PutFile(context.Background(), file("f1", "u1", created))
	_ = s.PutChart(context.Background(), chart("c1", "u1", "f1", created))

	// The boundary instant is still reachable.
	ck.set(created.Add(domain.RetentionWindow))
	if _, err := s.GetFile(context.Background(), "f1", "u1"); err != nil {
		t.Fatalf("record at boundary must be reachable, got %v", err)
	}

	// One step past the boundary every read path goes dark, even though the
	// janitor has not run.
	ck.set(created.Add(domain.RetentionWindow + time.Nanosecond))

	if _, err := s.GetFile(context.Background(), "f1", "u1"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("GetFile after expiry: got %v", err)
	}
	if _, err := s.GetChart(context.Background(), "c1", "u1"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("GetChart after expiry: got %v", err)
	}
	if exists, _ := s.FileExists(context.Background(), "f1"); exists {
		t.Errorf("FileExists after expiry: got true")
	}
	if files, _ := s.ListFiles(context.Background(), "u1", 0); len(files) != 0 {
		t.Errorf("ListFiles after expiry: got %d", len(files))
	}
	if ids, _ := s.ListChartIDsByFile(context.Background(), "f1"); len(ids) != 0 {
		t.Errorf("ListChartIDsByFile after expiry: got %v", ids)
	}
	if err := s.UpdateFileStatus(context.Background(), "f1", domain.StatusFailed); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("UpdateFileStatus after expiry: got %v", err)
	}
}

func TestStore_ListFiles_NewestFirstWithLimit(t *testing.T) {
	s := newStore(t, Options{})
	base := time.Now()

	for i, id := range []string{"f1", "f2", "f3"} {
		_ = s.PutFile(context.Background(), file(id, "u1", base.Add(time.Duration(i)*time.Minute)))
	}
	_ = s.PutFile(context.Background(), file("fx", "other", base))

	files, err := s.ListFiles(context.Background(), "u1", 2)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].ID != "f3" || files[1].ID != "f2" {
		t.Fatalf("expected newest first [f3 f2], got [%s %s]", files[0].ID, files[1].ID)
	}

	all, _ := s.ListFiles(context.Background(), "u1", 0)
	if len(all) != 3 {
		t.Fatalf("limit 0 must return all, got %d", len(all))
	}
}

func TestStore_DeleteFile_EmitsEvent(t *testing.T) {
	s := newStore(t, Options{})
	_ = s.PutFile(context.Background(), file("f1", "u1", time.Now()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := s.SubscribeDeletions(ctx)
	if err != nil {
		t.Fatalf("SubscribeDeletions: %v", err)
	}

	if err := s.DeleteFile(context.Background(), "f1"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Kind != port.KindFile || ev.ID != "f1" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("no deletion event delivered")
	}
}

func TestStore_JanitorSweepsAndNotifies(t *testing.T) {
	ck := &clock{t: time.Now()}
	s := newStore(t, Options{ScanInterval: 10 * time.Millisecond, Now: ck.now})

	created := ck.now()
	_ = s.PutFile(context.Background(), file("f1", "u1", created))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := s.SubscribeDeletions(ctx)
	if err != nil {
		t.Fatalf("SubscribeDeletions: %v", err)
	}

	ck.set(created.Add(domain.RetentionWindow + time.Second))

	select {
	case ev := <-events:
		if ev.Kind != port.KindFile || ev.ID != "f1" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("janitor never emitted the expiry event")
	}
}

func TestStore_DeleteMissingRecord(t *testing.T) {
	s := newStore(t, Options{})

	if err := s.DeleteFile(context.Background(), "nope"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("DeleteFile: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteChart(context.Background(), "nope"); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("DeleteChart: expected ErrNotFound, got %v", err)
	}
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	s := newStore(t, Options{})
	f := file("f1", "u1", time.Now())
	f.Rows = []domain.Row{{"name": "original"}}
	_ = s.PutFile(context.Background(), f)

	got, err := s.GetFile(context.Background(), "f1", "u1")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	got.Rows[0]["name"] = "mutated"

	again, _ := s.GetFile(context.Background(), "f1", "u1")
	if again.Rows[0]["name"] != "original" {
		t.Fatalf("caller mutation leaked into stored record")
	}
}
