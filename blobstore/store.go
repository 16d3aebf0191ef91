package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/neodb/internal/conv"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
// The value is os.ErrNotExist so that file system errors match as well.
var ErrNotFound = os.ErrNotExist

// ErrReadOnly is returned by wrappers whose inner store does not implement Putter.
var ErrReadOnly = errors.New("blobstore: store is read-only")

// Store opens immutable data blobs by name.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Putter is implemented by stores that accept writes.
type Putter interface {
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.ReaderAt
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Mappable is an optional interface for Blobs that expose their contents
// without copying.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll returns the full contents of b. Mappable blobs are returned without
// copying, so the result must not be used after b is closed.
func ReadAll(b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		return m.Bytes()
	}

	size, err := conv.Int64ToInt(b.Size())
	if err != nil {
		return nil, fmt.Errorf("blobstore: blob too large: %w", err)
	}
	if size < 0 {
		return nil, fmt.Errorf("blobstore: negative blob size %d", size)
	}

	buf := make([]byte, size)
	n, err := b.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("blobstore: short read: %d of %d bytes", n, size)
	}
	return buf, nil
}

// NewReader returns a sequential reader over b.
func NewReader(b Blob) io.Reader {
	return io.NewSectionReader(b, 0, b.Size())
}
