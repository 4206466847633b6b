package port

import (
	"context"
	"errors"
	"time"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
)

var (
	ErrInvalidType      = errors.New("invalid file type")
	ErrInvalidSize      = errors.New("invalid file size")
	ErrInvalidChartType = errors.New("invalid chart type")
	ErrMissingAxis      = errors.New("missing axis binding")
	ErrInvalidDataShape = errors.New("invalid chart data shape")

	// ErrChartOutlivesFile rejects a chart whose creation time falls past
	// its file's expiry boundary. The boundary itself is accepted.
	ErrChartOutlivesFile = errors.New("chart cannot outlive its file")

	// ErrInvalidChartData flags a stored chart missing fields that creation
	// validation should have guaranteed. Defensive; should be unreachable.
	ErrInvalidChartData = errors.New("invalid chart data")
)

// CreateFileInput carries an already-parsed upload into the file manager.
// The caller guarantees Type matches the payload and Size is the true byte
// length; both are re-checked defensively.
type CreateFileInput struct {
	OwnerID       string
	Name          string
	Type          domain.FileType
	Size          int64
	Columns       []string
	Rows          []domain.Row
	PayloadHandle string
	Checksum      uint32
}

// FileService owns the File lifecycle.
type FileService interface {
	// CreateFile persists the upload with status processing and schedules
	// the asynchronous processing flip. Derived fields are returned.
	CreateFile(ctx context.Context, in CreateFileInput) (*domain.File, error)

	GetFile(ctx context.Context, id, ownerID string) (*domain.File, error)
	ListFiles(ctx context.Context, ownerID string, limit int) ([]*domain.File, error)

	// DeleteFile cascades: charts referencing the file, then the backing
	// payload, then the record. Partial completion on crash is repaired by
	// the reconciler.
	DeleteFile(ctx context.Context, id, ownerID string) error

	// AdminDeleteFile is DeleteFile without owner scoping.
	AdminDeleteFile(ctx context.Context, id string) error
}

// CreateChartInput carries a chart save request. Dimension is never an
// input; it is derived from Type.
type CreateChartInput struct {
	OwnerID     string
	FileID      string
	Type        domain.ChartType
	Title       string
	XAxis       string
	YAxis       string
	ZAxis       string
	Data        []domain.Point
	DataPreview []domain.Point
	Image       string
}

// ChartSummary is the minimal payload returned on creation; the full record
// is retrievable separately.
type ChartSummary struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Type      domain.ChartType `json:"chart_type"`
	Dimension domain.Dimension `json:"dimension"`
	CreatedAt time.Time        `json:"created_at"`
}

// ChartExpiry describes a chart's remaining lifetime.
type ChartExpiry struct {
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
	Remaining time.Duration `json:"remaining_ms"`
	IsExpired bool          `json:"is_expired"`
}

// ChartService owns the Chart lifecycle.
type ChartService interface {
	CreateChart(ctx context.Context, in CreateChartInput) (*ChartSummary, error)
	GetChart(ctx context.Context, id, ownerID string) (*domain.Chart, error)
	ListCharts(ctx context.Context, ownerID string, limit int) ([]*domain.Chart, error)
	DeleteChart(ctx context.Context, id, ownerID string) error
	AdminDeleteChart(ctx context.Context, id string) error
	ChartExpiry(ctx context.Context, id, ownerID string) (*ChartExpiry, error)
}

// FileStats aggregates one owner's files.
type FileStats struct {
	TotalFiles  int                       `json:"total_files"`
	TotalSize   int64                     `json:"total_size"`
	ByType      map[domain.FileType]int   `json:"file_types"`
	ByStatus    map[domain.FileStatus]int `json:"processing_status"`
	RecentFiles []*domain.File            `json:"recent_files"`
}

// ChartStats aggregates one owner's charts.
type ChartStats struct {
	TotalCharts  int                      `json:"total_charts"`
	ByDimension  map[domain.Dimension]int `json:"dimensions"`
	ByType       map[domain.ChartType]int `json:"chart_types"`
	RecentCharts []*domain.Chart          `json:"recent_charts"`
}

// AdminStats is the unscoped view across all owners.
type AdminStats struct {
	TotalFiles   int                       `json:"total_files"`
	TotalCharts  int                       `json:"total_charts"`
	TotalStorage int64                     `json:"total_storage"`
	FilesByType  map[domain.FileType]int   `json:"files_by_type"`
	FileStatus   map[domain.FileStatus]int `json:"file_status"`
	ChartsByType map[domain.ChartType]int  `json:"charts_by_type"`
	RecentFiles  []*domain.File            `json:"recent_files"`
	RecentCharts []*domain.Chart           `json:"recent_charts"`
}

// StatsService computes aggregate views over the store.
type StatsService interface {
	FileStats(ctx context.Context, ownerID string) (*FileStats, error)
	ChartStats(ctx context.Context, ownerID string) (*ChartStats, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
}
