package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
)

//go:generate mockgen -destination=../service/mocks/store_mock.go -package=mocks -source=store.go

var (
	// ErrNotFound covers records that are absent, expired, or owned by
	// someone else. The three cases are indistinguishable to callers.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateKey reports an id collision on insert.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStoreUnavailable is a transient infrastructure failure. Callers
	// must treat it as retryable and must not assume the write was lost.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// RecordKind identifies which collection a deletion event refers to.
type RecordKind string

const (
	KindFile  RecordKind = "file"
	KindChart RecordKind = "chart"
)

// DeletionEvent is emitted when a record leaves the store, whether through
// an explicit delete or TTL expiry. Delivery is best-effort and at-least-once;
// subscribers must be idempotent.
type DeletionEvent struct {
	Kind RecordKind
	ID   string
}

// ResourceStore is keyed storage for File and Chart records. Every record is
// bounded by domain.RetentionWindow anchored on its CreatedAt: the store
// guarantees a record is unreachable through reads no later than the anchor
// plus the window, with deletion itself handled by a background sweep.
//
// Reads and owner-driven deletes are owner-scoped; the *Any variants exist
// for the admin surface and the reconciler only.
type ResourceStore interface {
	PutFile(ctx context.Context, f *domain.File) error
	GetFile(ctx context.Context, id, ownerID string) (*domain.File, error)
	GetFileAny(ctx context.Context, id string) (*domain.File, error)
	// ListFiles returns the owner's files newest first. limit <= 0 means all.
	ListFiles(ctx context.Context, ownerID string, limit int) ([]*domain.File, error)
	UpdateFileStatus(ctx context.Context, id string, status domain.FileStatus) error
	DeleteFile(ctx context.Context, id string) error
	FileExists(ctx context.Context, id string) (bool, error)
	ScanFiles(ctx context.Context) ([]*domain.File, error)

	PutChart(ctx context.Context, c *domain.Chart) error
	GetChart(ctx context.Context, id, ownerID string) (*domain.Chart, error)
	GetChartAny(ctx context.Context, id string) (*domain.Chart, error)
	ListCharts(ctx context.Context, ownerID string, limit int) ([]*domain.Chart, error)
	ListChartIDsByFile(ctx context.Context, fileID string) ([]string, error)
	DeleteChart(ctx context.Context, id string) error
	ScanCharts(ctx context.Context) ([]*domain.Chart, error)

	// SubscribeDeletions delivers deletion events until ctx is cancelled.
	// Events for TTL-caused deletes may be delayed or dropped entirely; the
	// reconciler sweep is the consistency backstop.
	SubscribeDeletions(ctx context.Context) (<-chan DeletionEvent, error)

	Close() error
}
