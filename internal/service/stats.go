package service

import (
	"context"
	"sort"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
)

const recentItems = 5

// StatsServiceImpl computes aggregate views over the store. Owner-scoped
// stats read through the owner indexes; admin stats scan both collections.
type StatsServiceImpl struct {
	store port.ResourceStore
}

var _ port.StatsService = (*StatsServiceImpl)(nil)

func NewStatsService(store port.ResourceStore) *StatsServiceImpl {
	return &StatsServiceImpl{store: store}
}

func (s *StatsServiceImpl) FileStats(ctx context.Context, ownerID string) (*port.FileStats, error) {
	files, err := s.store.ListFiles(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}

	stats := &port.FileStats{
		TotalFiles: len(files),
		ByType:     make(map[domain.FileType]int),
		ByStatus:   make(map[domain.FileStatus]int),
	}
	for _, f := range files {
		stats.TotalSize += f.Size
		stats.ByType[f.Type]++
		stats.ByStatus[f.Status]++
	}
	stats.RecentFiles = head(files, recentItems)
	return stats, nil
}

func (s *StatsServiceImpl) ChartStats(ctx context.Context, ownerID string) (*port.ChartStats, error) {
	charts, err := s.store.ListCharts(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}

	stats := &port.ChartStats{
		TotalCharts: len(charts),
		ByDimension: make(map[domain.Dimension]int),
		ByType:      make(map[domain.ChartType]int),
	}
	for _, c := range charts {
		stats.ByDimension[c.Dimension]++
		stats.ByType[c.Type]++
	}
	stats.RecentCharts = head(charts, recentItems)
	return stats, nil
}

func (s *StatsServiceImpl) AdminStats(ctx context.Context) (*port.AdminStats, error) {
	files, err := s.store.ScanFiles(ctx)
	if err != nil {
		return nil, err
	}
	charts, err := s.store.ScanCharts(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].CreatedAt.After(files[j].CreatedAt) })
	sort.Slice(charts, func(i, j int) bool { return charts[i].CreatedAt.After(charts[j].CreatedAt) })

	stats := &port.AdminStats{
		TotalFiles:   len(files),
		TotalCharts:  len(charts),
		FilesByType:  make(map[domain.FileType]int),
		FileStatus:   make(map[domain.FileStatus]int),
		ChartsByType: make(map[domain.ChartType]int),
	}
	for _, f := range files {
		stats.TotalStorage += f.Size
		stats.FilesByType[f.Type]++
		stats.FileStatus[f.Status]++
	}
	for _, c := range charts {
		stats.ChartsByType[c.Type]++
	}
	stats.RecentFiles = head(files, recentItems)
	stats.RecentCharts = head(charts, recentItems)
	return stats, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
