package neodb

import (
	"context"

	"github.com/hupe1980/neodb/blobstore"
	"github.com/hupe1980/neodb/extract"
)

// Open loads the NEO CSV and close approach JSON named in store and links
// them into a database. Both files are read concurrently; names ending in
// .gz, .zst or .lz4 are decompressed transparently.
func Open(ctx context.Context, store blobstore.Store, neoName, cadName string, optFns ...Option) (*DB, error) {
	opts := applyOptions(optFns)

	neos, approaches, err := extract.Load(ctx, store, neoName, cadName,
		extract.WithCodec(opts.codec),
		extract.WithSkipMalformed(opts.skipMalformed),
		extract.WithLogger(opts.logger.Logger),
		extract.WithResourceController(opts.rc),
	)
	if err != nil {
		return nil, err
	}

	return New(neos, approaches, optFns...)
}
