// Package blob stores raw upload payloads on local disk. Handles are opaque
// file names inside a single data directory; the record keeps the handle and
// a checksum, nothing else about the layout leaks out.
package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthanhphan/go-sheet-charts/internal/port"
	"github.com/google/uuid"
	"github.com/spaolacci/murmur3"
)

// Store implements port.PayloadStore on a directory.
type Store struct {
	dir string
}

var _ port.PayloadStore = (*Store)(nil)

// New creates the data directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create payload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the payload under a fresh uuid-based handle, preserving the
// original extension, and returns the handle with a murmur3 checksum.
func (s *Store) Save(_ context.Context, name string, data []byte) (string, uint32, error) {
	handle := uuid.NewString() + filepath.Ext(name)
	path := filepath.Join(s.dir, handle)

	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", 0, fmt.Errorf("write payload %s: %w", handle, err)
	}
	return handle, murmur3.Sum32(data), nil
}

// Delete removes the payload. Handles must be plain names; anything with a
// path separator is rejected rather than resolved.
func (s *Store) Delete(_ context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	if filepath.Base(handle) != handle {
		return fmt.Errorf("malformed payload handle %q", handle)
	}

	err := os.Remove(filepath.Join(s.dir, handle))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete payload %s: %w", handle, err)
	}
	return nil
}

// List enumerates stored payloads with their modification times.
func (s *Store) List(_ context.Context) ([]port.PayloadInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list payload dir: %w", err)
	}

	out := make([]port.PayloadInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, port.PayloadInfo{Handle: e.Name(), ModTime: info.ModTime()})
	}
	return out, nil
}
