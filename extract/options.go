package extract

import (
	"log/slog"

	"github.com/hupe1980/neodb/codec"
	"github.com/hupe1980/neodb/internal/resource"
)

type options struct {
	codec         codec.Codec
	skipMalformed bool
	logger        *slog.Logger
	rc            *resource.Controller
}

// Option configures loading.
type Option func(*options)

// WithCodec sets the JSON codec for close approach data.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithSkipMalformed skips records that fail to convert instead of aborting.
// Every skipped record is logged at warn level.
func WithSkipMalformed(skip bool) Option {
	return func(o *options) {
		o.skipMalformed = skip
	}
}

// WithLogger sets the logger for load progress and skipped records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

// WithResourceController reserves each blob's size against the controller's
// memory budget while it is decoded. Compressed blobs are additionally
// charged for every decompressed byte.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:  codec.Default,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// handle applies the skip policy to a record error. It returns nil when the
// record should be skipped.
func (o *options) handle(err *RecordError) error {
	if !o.skipMalformed {
		return err
	}
	o.logger.Warn("skipping malformed record",
		"source", err.Source,
		"record", err.Record,
		"error", err.Err,
	)
	return nil
}
