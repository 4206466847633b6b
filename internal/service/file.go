package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/go-sheet-charts/internal/domain"
	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/anthanhphan/go-sheet-charts/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

const statusFlipTimeout = 5 * time.Second

// FileServiceImpl owns the File lifecycle: creation with derived fields, the
// asynchronous processing flip, owner-scoped reads, and the cascade delete.
type FileServiceImpl struct {
	store    port.ResourceStore
	payloads port.PayloadStore
	idGen    IDGenerator
	pool     *resilience.WorkerPool

	processingDelay time.Duration
	now             func() time.Time
}

var _ port.FileService = (*FileServiceImpl)(nil)

// NewFileService builds the file lifecycle manager. processingDelay is the
// fixed interval after which a freshly created file flips to processed.
func NewFileService(store port.ResourceStore, payloads port.PayloadStore, idGen IDGenerator, pool *resilience.WorkerPool, processingDelay time.Duration) *FileServiceImpl {
	return &FileServiceImpl{
		store:           store,
		payloads:        payloads,
		idGen:           idGen,
		pool:            pool,
		processingDelay: processingDelay,
		now:             time.Now,
	}
}

// CreateFile validates the upload, derives columns/preview/rowCount, and
// persists the record with status processing. The processing flip runs in
// the background; its failure is logged, never surfaced to this caller.
func (s *FileServiceImpl) CreateFile(ctx context.Context, in port.CreateFileInput) (*domain.File, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", port.ErrInvalidType, in.Type)
	}
	if in.Size <= 0 {
		return nil, fmt.Errorf("%w: %d bytes", port.ErrInvalidSize, in.Size)
	}

	n, err := s.idGen.Next()
	if err != nil {
		return nil, fmt.Errorf("generate file id: %w", err)
	}

	f := &domain.File{
		ID:            buildFileID(n),
		OwnerID:       in.OwnerID,
		Name:          in.Name,
		Type:          in.Type,
		Size:          in.Size,
		Columns:       in.Columns,
		Rows:          in.Rows,
		Status:        domain.StatusProcessing,
		PayloadHandle: in.PayloadHandle,
		Checksum:      in.Checksum,
		CreatedAt:     s.now().UTC(),
	}
	f.Derive()

	if err := s.store.PutFile(ctx, f); err != nil {
		return nil, fmt.Errorf("persist file %s: %w", f.ID, err)
	}

	s.scheduleProcessing(f.ID)
	return f, nil
}

func (s *FileServiceImpl) GetFile(ctx context.Context, id, ownerID string) (*domain.File, error) {
	return s.store.GetFile(ctx, id, ownerID)
}

func (s *FileServiceImpl) ListFiles(ctx context.Context, ownerID string, limit int) ([]*domain.File, error) {
	return s.store.ListFiles(ctx, ownerID, limit)
}

// DeleteFile cascades charts, payload, then the record, in that order, so a
// crash mid-way can only leave orphans the reconciler already repairs.
func (s *FileServiceImpl) DeleteFile(ctx context.Context, id, ownerID string) error {
	f, err := s.store.GetFile(ctx, id, ownerID)
	if err != nil {
		return err
	}
	return s.cascadeDelete(ctx, f)
}

// AdminDeleteFile is the unscoped variant used by the admin surface.
func (s *FileServiceImpl) AdminDeleteFile(ctx context.Context, id string) error {
	f, err := s.store.GetFileAny(ctx, id)
	if err != nil {
		return err
	}
	return s.cascadeDelete(ctx, f)
}

func (s *FileServiceImpl) cascadeDelete(ctx context.Context, f *domain.File) error {
	chartIDs, err := s.store.ListChartIDsByFile(ctx, f.ID)
	if err != nil {
		return fmt.Errorf("resolve charts of file %s: %w", f.ID, err)
	}
	for _, chartID := range chartIDs {
		err := s.store.DeleteChart(ctx, chartID)
		if err != nil && !errors.Is(err, port.ErrNotFound) {
			// The record delete below still proceeds; the reconciler
			// sweep picks up any chart left behind.
			logger.Warnw("Cascade chart delete failed", "file_id", f.ID, "chart_id", chartID, "error", err.Error())
		}
	}

	if f.PayloadHandle != "" {
		if err := s.payloads.Delete(ctx, f.PayloadHandle); err != nil {
			// A dangling payload is a leaked resource, not a caller error.
			logger.Warnw("Payload delete failed", "file_id", f.ID, "handle", f.PayloadHandle, "error", err.Error())
		}
	}

	if err := s.store.DeleteFile(ctx, f.ID); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			// Lost the race against a concurrent delete or TTL expiry;
			// the cascade above is idempotent, so this is a no-op.
			return nil
		}
		return fmt.Errorf("delete file %s: %w", f.ID, err)
	}
	return nil
}

// scheduleProcessing arms the processing->processed transition. The delay
// runs on a timer so no pool worker is parked waiting for it; only the flip
// itself is submitted once the timer fires. There is no caller-visible
// handle; a process restart before the timer fires leaves the record in
// processing until the reconciler repairs it.
func (s *FileServiceImpl) scheduleProcessing(id string) {
	time.AfterFunc(s.processingDelay, func() {
		err := s.pool.Submit(context.Background(), func() { s.finishProcessing(id) })
		if err != nil {
			logger.Warnw("Processing flip dropped", "file_id", id, "error", err.Error())
		}
	})
}

func (s *FileServiceImpl) finishProcessing(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), statusFlipTimeout)
	defer cancel()

	err := s.store.UpdateFileStatus(ctx, id, domain.StatusProcessed)
	if err == nil {
		return
	}
	if errors.Is(err, port.ErrNotFound) {
		// Deleted or expired before processing finished.
		return
	}

	logger.Errorw("Processing flip failed", "file_id", id, "error", err.Error())
	if err := s.store.UpdateFileStatus(ctx, id, domain.StatusFailed); err != nil && !errors.Is(err, port.ErrNotFound) {
		logger.Errorw("Marking file failed also failed", "file_id", id, "error", err.Error())
	}
}
