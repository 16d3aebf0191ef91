package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/neodb/blobstore"
	"github.com/hupe1980/neodb/internal/resource"
	"github.com/hupe1980/neodb/model"
	"golang.org/x/sync/errgroup"
)

// LoadNEOs opens name in store and decodes its NEO records.
func LoadNEOs(ctx context.Context, store blobstore.Store, name string, optFns ...Option) ([]*model.NearEarthObject, error) {
	opts := applyOptions(optFns)
	var neos []*model.NearEarthObject
	err := withBlob(ctx, store, name, &opts, func(r io.Reader) error {
		var err error
		neos, err = decodeNEOs(name, r, &opts)
		return err
	})
	return neos, err
}

// LoadApproaches opens name in store and decodes its close approach records.
func LoadApproaches(ctx context.Context, store blobstore.Store, name string, optFns ...Option) ([]*model.CloseApproach, error) {
	opts := applyOptions(optFns)
	var approaches []*model.CloseApproach
	err := withBlob(ctx, store, name, &opts, func(r io.Reader) error {
		var err error
		approaches, err = decodeApproaches(name, r, &opts)
		return err
	})
	return approaches, err
}

// Load reads both datasets concurrently. The first failure cancels the other
// load.
func Load(ctx context.Context, store blobstore.Store, neoName, cadName string, optFns ...Option) ([]*model.NearEarthObject, []*model.CloseApproach, error) {
	var (
		neos       []*model.NearEarthObject
		approaches []*model.CloseApproach
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		neos, err = LoadNEOs(gctx, store, neoName, optFns...)
		return err
	})
	g.Go(func() error {
		var err error
		approaches, err = LoadApproaches(gctx, store, cadName, optFns...)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return neos, approaches, nil
}

func withBlob(ctx context.Context, store blobstore.Store, name string, opts *options, fn func(io.Reader) error) error {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer blob.Close()

	size := blob.Size()
	if err := opts.rc.AcquireMemory(size); err != nil {
		return fmt.Errorf("load %s (%d bytes): %w", name, size, err)
	}
	defer opts.rc.ReleaseMemory(size)

	data, err := blobstore.ReadAll(blob)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	compression := DetectCompression(name)
	r, err := Decompress(compression, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decompress %s: %w", name, err)
	}
	defer r.Close()

	opts.logger.Debug("loading blob",
		"name", name,
		"bytes", size,
		"compression", string(compression),
	)

	if err := ctx.Err(); err != nil {
		return err
	}

	if compression == CompressionNone {
		return fn(r)
	}

	// Decompressed bytes are charged as they are read, on top of the
	// compressed blob.
	br := &budgetReader{r: r, rc: opts.rc}
	defer func() { opts.rc.ReleaseMemory(br.charged) }()
	err = fn(br)
	if br.err != nil {
		return fmt.Errorf("load %s (%d bytes decompressed): %w", name, br.charged, br.err)
	}
	return err
}

// budgetReader reserves every byte it returns against a memory budget.
type budgetReader struct {
	r       io.Reader
	rc      *resource.Controller
	charged int64
	err     error
}

func (b *budgetReader) Read(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	n, err := b.r.Read(p)
	if n > 0 {
		if aerr := b.rc.AcquireMemory(int64(n)); aerr != nil {
			b.err = aerr
			return 0, aerr
		}
		b.charged += int64(n)
	}
	return n, err
}
