package service

import (
	"context"
	"testing"
	"time"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
)

func TestStatsService_FileStats(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	put := func(id string, typ domain.FileType, status domain.FileStatus, size int64, offset time.Duration) {
		f := &domain.File{ID: id, OwnerID: "u1", Type: typ, Size: size, Status: status, CreatedAt: now.Add(offset)}
		if err := store.PutFile(context.Background(), f); err != nil {
			t.Fatalf("PutFile %s: %v", id, err)
		}
	}
	for i := 0; i < 6; i++ {
		put("f"+string(rune('a'+i)), domain.FileTypeCSV, domain.StatusProcessed, 100, time.Duration(i)*time.Minute)
	}
	put("fx", domain.FileTypeXLSX, domain.StatusProcessing, 50, time.Hour)
	// Another owner's file must not count.
	foreign := &domain.File{ID: "zz", OwnerID: "u2", Type: domain.FileTypeCSV, Size: 999, Status: domain.StatusProcessed, CreatedAt: now}
	_ = store.PutFile(context.Background(), foreign)

	svc := NewStatsService(store)
	stats, err := svc.FileStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FileStats: %v", err)
	}

	if stats.TotalFiles != 7 {
		t.Errorf("TotalFiles = %d, want 7", stats.TotalFiles)
	}
	if stats.TotalSize != 650 {
		t.Errorf("TotalSize = %d, want 650", stats.TotalSize)
	}
	if stats.ByType[domain.FileTypeCSV] != 6 || stats.ByType[domain.FileTypeXLSX] != 1 {
		t.Errorf("ByType = %v", stats.ByType)
	}
	if stats.ByStatus[domain.StatusProcessing] != 1 {
		t.Errorf("ByStatus = %v", stats.ByStatus)
	}
	if len(stats.RecentFiles) != 5 {
		t.Errorf("RecentFiles = %d, want 5", len(stats.RecentFiles))
	}
	if stats.RecentFiles[0].ID != "fx" {
		t.Errorf("most recent file = %s, want fx", stats.RecentFiles[0].ID)
	}
}

func TestStatsService_ChartStats(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	types := []domain.ChartType{domain.ChartTypeBar, domain.ChartTypeBar, domain.ChartTypeLine3D}
	for i, ct := range types {
		c := &domain.Chart{
			ID: "c" + string(rune('1'+i)), OwnerID: "u1", FileID: "f1",
			Type: ct, Dimension: ct.Dimension(),
			Data: []domain.Point{{"x": 1, "y": 2}}, CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		if err := store.PutChart(context.Background(), c); err != nil {
			t.Fatalf("PutChart: %v", err)
		}
	}

	svc := NewStatsService(store)
	stats, err := svc.ChartStats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ChartStats: %v", err)
	}

	if stats.TotalCharts != 3 {
		t.Errorf("TotalCharts = %d, want 3", stats.TotalCharts)
	}
	if stats.ByDimension[domain.Dimension2D] != 2 || stats.ByDimension[domain.Dimension3D] != 1 {
		t.Errorf("ByDimension = %v", stats.ByDimension)
	}
	if stats.ByType[domain.ChartTypeBar] != 2 {
		t.Errorf("ByType = %v", stats.ByType)
	}
}

func TestStatsService_AdminStatsSpansOwners(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC()

	for i, owner := range []string{"u1", "u2", "u3"} {
		f := &domain.File{ID: "f" + owner, OwnerID: owner, Type: domain.FileTypeCSV, Size: 10, Status: domain.StatusProcessed, CreatedAt: now.Add(time.Duration(i) * time.Minute)}
		if err := store.PutFile(context.Background(), f); err != nil {
			t.Fatalf("PutFile: %v", err)
		}
	}
	c := &domain.Chart{ID: "c1", OwnerID: "u2", FileID: "fu2", Type: domain.ChartTypePie, Dimension: domain.Dimension2D, Data: []domain.Point{{"x": 1, "y": 2}}, CreatedAt: now}
	_ = store.PutChart(context.Background(), c)

	svc := NewStatsService(store)
	stats, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("AdminStats: %v", err)
	}

	if stats.TotalFiles != 3 || stats.TotalCharts != 1 {
		t.Errorf("totals = %d files / %d charts", stats.TotalFiles, stats.TotalCharts)
	}
	if stats.TotalStorage != 30 {
		t.Errorf("TotalStorage = %d, want 30", stats.TotalStorage)
	}
	if stats.RecentFiles[0].ID != "fu3" {
		t.Errorf("most recent file = %s, want fu3", stats.RecentFiles[0].ID)
	}
	if stats.ChartsByType[domain.ChartTypePie] != 1 {
		t.Errorf("ChartsByType = %v", stats.ChartsByType)
	}
}
