package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anthanhphan/go-sheet-charts/internal/adapter/outbound/memstore"
	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/anthanhphan/go-sheet-charts/internal/service/mocks"
	"go.uber.org/mock/gomock"
)

func seedChart(t *testing.T, store port.ResourceStore, id, owner, fileID string, createdAt time.Time) {
	t.Helper()
	c := &domain.Chart{
		ID: id, OwnerID: owner, FileID: fileID,
		Type: domain.ChartTypeBar, Dimension: domain.Dimension2D,
		Data: []domain.Point{{"x": 1, "y": 2}}, CreatedAt: createdAt,
	}
	if err := store.PutChart(context.Background(), c); err != nil {
		t.Fatalf("seed chart %s: %v", id, err)
	}
}

func TestReconciler_SweepRemovesOrphanCharts(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	seedFile(t, store, "f1", "u1", now)
	seedChart(t, store, "c-live", "u1", "f1", now)
	seedChart(t, store, "c-orphan1", "u1", "f-gone", now)
	seedChart(t, store, "c-orphan2", "u2", "f-gone", now)

	r := NewReconciler(store, nil, ReconcilerConfig{})
	r.sweepOnce(context.Background())

	if _, err := store.GetChartAny(context.Background(), "c-live"); err != nil {
		t.Errorf("chart with live file must survive, got %v", err)
	}
	for _, id := range []string{"c-orphan1", "c-orphan2"} {
		if _, err := store.GetChartAny(context.Background(), id); !errors.Is(err, port.ErrNotFound) {
			t.Errorf("orphan %s should be removed, got %v", id, err)
		}
	}
}

func TestReconciler_SweepIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	seedChart(t, store, "c-orphan", "u1", "f-gone", time.Now().UTC())

	r := NewReconciler(store, nil, ReconcilerConfig{})
	r.sweepOnce(context.Background())
	r.sweepOnce(context.Background())

	charts, err := store.ScanCharts(context.Background())
	if err != nil {
		t.Fatalf("ScanCharts: %v", err)
	}
	if len(charts) != 0 {
		t.Fatalf("expected empty store after repeated sweeps, got %d charts", len(charts))
	}
}

func TestReconciler_SweepRepairsStaleProcessing(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	stale := &domain.File{ID: "f-stale", OwnerID: "u1", Type: domain.FileTypeCSV, Size: 10, Status: domain.StatusProcessing, CreatedAt: now.Add(-30 * time.Minute)}
	fresh := &domain.File{ID: "f-fresh", OwnerID: "u1", Type: domain.FileTypeCSV, Size: 10, Status: domain.StatusProcessing, CreatedAt: now.Add(-time.Minute)}
	done := &domain.File{ID: "f-done", OwnerID: "u1", Type: domain.FileTypeCSV, Size: 10, Status: domain.StatusProcessed, CreatedAt: now.Add(-30 * time.Minute)}
	for _, f := range []*domain.File{stale, fresh, done} {
		if err := store.PutFile(context.Background(), f); err != nil {
			t.Fatalf("PutFile %s: %v", f.ID, err)
		}
	}

	r := NewReconciler(store, nil, ReconcilerConfig{StaleProcessingAfter: 10 * time.Minute})
	r.sweepOnce(context.Background())

	wantStatus := map[string]domain.FileStatus{
		"f-stale": domain.StatusFailed,
		"f-fresh": domain.StatusProcessing,
		"f-done":  domain.StatusProcessed,
	}
	for id, want := range wantStatus {
		f, err := store.GetFileAny(context.Background(), id)
		if err != nil {
			t.Fatalf("GetFileAny %s: %v", id, err)
		}
		if f.Status != want {
			t.Errorf("%s: status = %s, want %s", id, f.Status, want)
		}
	}
}

func TestReconciler_SweepPrunesLeakedPayloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := newTestStore(t)
	now := time.Now().UTC()

	referenced := &domain.File{ID: "f1", OwnerID: "u1", Type: domain.FileTypeCSV, Size: 10, PayloadHandle: "h-ref", CreatedAt: now}
	if err := store.PutFile(context.Background(), referenced); err != nil {
		t.Fatalf("PutFile: %v", err)
	}

	payloads := mocks.NewMockPayloadStore(ctrl)
	payloads.EXPECT().List(gomock.Any()).Return([]port.PayloadInfo{
		{Handle: "h-ref", ModTime: now.Add(-2 * time.Hour)},   // referenced, keep
		{Handle: "h-leak", ModTime: now.Add(-2 * time.Hour)},  // unreferenced and old, prune
		{Handle: "h-young", ModTime: now.Add(-time.Minute)},   // unreferenced but in grace, keep
	}, nil)
	payloads.EXPECT().Delete(gomock.Any(), "h-leak").Return(nil)

	r := NewReconciler(store, payloads, ReconcilerConfig{PayloadGrace: time.Hour})
	r.sweepOnce(context.Background())
}

func TestReconciler_FileDeletionEventCascades(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	seedFile(t, store, "f1", "u1", now)
	seedChart(t, store, "c1", "u1", "f1", now)
	seedChart(t, store, "c2", "u1", "f1", now)

	r := NewReconciler(store, nil, ReconcilerConfig{SweepInterval: time.Hour})
	r.Start(context.Background())
	defer r.Stop()

	// Give the event consumer a moment to subscribe before deleting.
	time.Sleep(20 * time.Millisecond)
	if err := store.DeleteFile(context.Background(), "f1"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		_, err1 := store.GetChartAny(context.Background(), "c1")
		_, err2 := store.GetChartAny(context.Background(), "c2")
		if errors.Is(err1, port.ErrNotFound) && errors.Is(err2, port.ErrNotFound) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("charts not cascaded after file deletion event: %v / %v", err1, err2)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestReconciler_ExpiredFileSweptByJanitorCascades(t *testing.T) {
	// Drive the memstore clock past the file's window while the charts stay
	// fresh; the janitor's expiry event must trigger the chart cascade.
	base := time.Now().UTC()
	var mu sync.Mutex
	current := base
	store := memstore.New(memstore.Options{
		ScanInterval: 10 * time.Millisecond,
		Now: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return current
		},
	})
	defer func() { _ = store.Close() }()

	old := &domain.File{ID: "f-old", OwnerID: "u1", Type: domain.FileTypeCSV, Size: 10, CreatedAt: base.Add(-domain.RetentionWindow)}
	if err := store.PutFile(context.Background(), old); err != nil {
		t.Fatalf("PutFile: %v", err)
	}
	seedChart(t, store, "c1", "u1", "f-old", base)

	r := NewReconciler(store, nil, ReconcilerConfig{SweepInterval: time.Hour})
	r.Start(context.Background())
	defer r.Stop()
	time.Sleep(20 * time.Millisecond)

	// Step past the boundary; the next janitor tick expires the file.
	mu.Lock()
	current = base.Add(time.Second)
	mu.Unlock()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := store.GetChartAny(context.Background(), "c1"); errors.Is(err, port.ErrNotFound) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("chart of expired file was never cascaded")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
