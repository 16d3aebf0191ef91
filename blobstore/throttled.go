package blobstore

import (
	"context"

	"github.com/hupe1980/neodb/internal/resource"
)

// ThrottledStore limits the read throughput of an inner store.
type ThrottledStore struct {
	inner Store
	rc    *resource.Controller
}

// NewThrottledStore wraps inner so that reads wait on the controller's IO
// budget. A nil controller disables throttling.
func NewThrottledStore(inner Store, rc *resource.Controller) *ThrottledStore {
	return &ThrottledStore{inner: inner, rc: rc}
}

// Open opens a blob whose reads are throttled with ctx.
func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledBlob{Blob: b, ctx: ctx, rc: s.rc}, nil
}

// Put forwards to the inner store if it accepts writes.
func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	p, ok := s.inner.(Putter)
	if !ok {
		return ErrReadOnly
	}
	return p.Put(ctx, name, data)
}

// throttledBlob deliberately hides Mappable so every byte is metered.
type throttledBlob struct {
	Blob
	ctx context.Context
	rc  *resource.Controller
}

func (b *throttledBlob) ReadAt(p []byte, off int64) (int, error) {
	if err := b.rc.AcquireIO(b.ctx, len(p)); err != nil {
		return 0, err
	}
	return b.Blob.ReadAt(p, off)
}
