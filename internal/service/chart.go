package service

import (
	"context"
	"fmt"
	"time"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
)

// ChartServiceImpl owns the Chart lifecycle. Charts bind to a file owned by
// the same user and can never be created past that file's expiry boundary.
type ChartServiceImpl struct {
	store port.ResourceStore
	idGen IDGenerator
	now   func() time.Time
}

var _ port.ChartService = (*ChartServiceImpl)(nil)

// NewChartService builds the chart lifecycle manager.
func NewChartService(store port.ResourceStore, idGen IDGenerator) *ChartServiceImpl {
	return &ChartServiceImpl{
		store: store,
		idGen: idGen,
		now:   time.Now,
	}
}

// CreateChart validates the request, derives the dimension from the chart
// type, caps data at 1000 points and the preview at 10, and persists. All
// validation happens before the store write; a rejected request leaves no
// partial state.
func (s *ChartServiceImpl) CreateChart(ctx context.Context, in port.CreateChartInput) (*port.ChartSummary, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", port.ErrInvalidChartType, in.Type)
	}
	dim := in.Type.Dimension()

	if in.XAxis == "" {
		return nil, fmt.Errorf("%w: xAxis", port.ErrMissingAxis)
	}
	if in.YAxis == "" {
		return nil, fmt.Errorf("%w: yAxis", port.ErrMissingAxis)
	}
	if dim == domain.Dimension3D && in.ZAxis == "" {
		return nil, fmt.Errorf("%w: zAxis", port.ErrMissingAxis)
	}

	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: empty data series", port.ErrInvalidDataShape)
	}
	for i, p := range in.Data {
		if !p.HasShape(dim) {
			return nil, fmt.Errorf("%w: point %d", port.ErrInvalidDataShape, i)
		}
	}
	if in.Image == "" {
		return nil, fmt.Errorf("%w: missing rendered image", port.ErrInvalidChartData)
	}

	// Owner scoping doubles as the existence check: a file belonging to
	// another user is indistinguishable from a missing one.
	file, err := s.store.GetFile(ctx, in.FileID, in.OwnerID)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	if createdAt.After(file.ExpiresAt()) {
		return nil, fmt.Errorf("%w: file %s expires at %s", port.ErrChartOutlivesFile, file.ID, file.ExpiresAt().Format(time.RFC3339))
	}

	data := in.Data
	if len(data) > domain.MaxDataPoints {
		data = data[:domain.MaxDataPoints]
	}
	preview := in.DataPreview
	if len(preview) == 0 {
		preview = data
	}
	if len(preview) > domain.MaxPreviewPoints {
		preview = preview[:domain.MaxPreviewPoints]
	}

	title := in.Title
	if title == "" {
		title = domain.DefaultChartTitle
	}
	zAxis := in.ZAxis
	if dim != domain.Dimension3D {
		zAxis = ""
	}

	n, err := s.idGen.Next()
	if err != nil {
		return nil, fmt.Errorf("generate chart id: %w", err)
	}

	c := &domain.Chart{
		ID:          buildChartID(n),
		OwnerID:     in.OwnerID,
		FileID:      in.FileID,
		Type:        in.Type,
		Dimension:   dim,
		Title:       title,
		XAxis:       in.XAxis,
		YAxis:       in.YAxis,
		ZAxis:       zAxis,
		Data:        data,
		DataPreview: preview,
		Image:       in.Image,
		Config: domain.ChartConfig{
			ChartType: in.Type,
			Dimension: dim,
			XAxis:     in.XAxis,
			YAxis:     in.YAxis,
			ZAxis:     zAxis,
			Title:     title,
		},
		CreatedAt: createdAt,
	}

	if err := s.store.PutChart(ctx, c); err != nil {
		return nil, fmt.Errorf("persist chart %s: %w", c.ID, err)
	}

	return &port.ChartSummary{
		ID:        c.ID,
		Title:     c.Title,
		Type:      c.Type,
		Dimension: c.Dimension,
		CreatedAt: c.CreatedAt,
	}, nil
}

// GetChart returns the full record. The shape check mirrors creation
// validation and should be unreachable.
func (s *ChartServiceImpl) GetChart(ctx context.Context, id, ownerID string) (*domain.Chart, error) {
	c, err := s.store.GetChart(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !c.Type.Valid() || len(c.Data) == 0 {
		return nil, fmt.Errorf("%w: chart %s", port.ErrInvalidChartData, id)
	}
	return c, nil
}

func (s *ChartServiceImpl) ListCharts(ctx context.Context, ownerID string, limit int) ([]*domain.Chart, error) {
	return s.store.ListCharts(ctx, ownerID, limit)
}

// DeleteChart is a simple delete; charts have no dependents.
func (s *ChartServiceImpl) DeleteChart(ctx context.Context, id, ownerID string) error {
	if _, err := s.store.GetChart(ctx, id, ownerID); err != nil {
		return err
	}
	return s.store.DeleteChart(ctx, id)
}

// AdminDeleteChart is the unscoped variant used by the admin surface.
func (s *ChartServiceImpl) AdminDeleteChart(ctx context.Context, id string) error {
	return s.store.DeleteChart(ctx, id)
}

// ChartExpiry reports the chart's remaining lifetime.
func (s *ChartServiceImpl) ChartExpiry(ctx context.Context, id, ownerID string) (*port.ChartExpiry, error) {
	c, err := s.store.GetChart(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	remaining := c.ExpiresAt().Sub(s.now())
	if remaining < 0 {
		remaining = 0
	}
	return &port.ChartExpiry{
		CreatedAt: c.CreatedAt,
		ExpiresAt: c.ExpiresAt(),
		Remaining: remaining,
		IsExpired: remaining == 0,
	}, nil
}
