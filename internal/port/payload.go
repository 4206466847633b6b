package port

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../service/mocks/payload_store_mock.go -package=mocks -source=payload.go

// PayloadInfo describes one stored payload for the orphan sweep.
type PayloadInfo struct {
	Handle  string
	ModTime time.Time
}

// PayloadStore keeps the raw upload bytes and hands back a deletable handle.
// Where the bytes physically live is of no concern to the lifecycle managers.
type PayloadStore interface {
	// Save persists the payload under a fresh handle and returns the handle
	// together with a checksum of the bytes.
	Save(ctx context.Context, name string, data []byte) (handle string, checksum uint32, err error)

	// Delete removes the payload. Deleting a missing handle is not an error.
	Delete(ctx context.Context, handle string) error

	// List enumerates stored payloads, for reconciling leaked handles.
	List(ctx context.Context) ([]PayloadInfo, error)
}
