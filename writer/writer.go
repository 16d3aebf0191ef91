package writer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"path"
	"strings"

	"github.com/hupe1980/neodb/blobstore"
	"github.com/hupe1980/neodb/codec"
	"github.com/hupe1980/neodb/model"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// Columns are the flat output columns in order.
var Columns = []string{
	"datetime_utc",
	"distance_au",
	"velocity_km_s",
	"designation",
	"name",
	"diameter_km",
	"potentially_hazardous",
}

// ParseFormat resolves a format name, case-insensitively. "yml" is accepted
// for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatCSV, FormatJSON, FormatYAML, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath picks the format from a file name's extension.
func FormatForPath(name string) (Format, error) {
	ext := path.Ext(name)
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, name)
	}
	return ParseFormat(ext)
}

type options struct {
	codec codec.Codec
}

// Option configures a write.
type Option func(*options)

// WithCodec sets the JSON codec. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{codec: codec.Default}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Write serializes results to w in the given format.
func Write(format Format, w io.Writer, results iter.Seq[*model.CloseApproach], optFns ...Option) error {
	opts := applyOptions(optFns)

	switch format {
	case FormatCSV:
		return writeCSV(w, results)
	case FormatJSON:
		return writeJSON(w, results, opts.codec)
	case FormatYAML:
		return writeYAML(w, results)
	case FormatXLSX:
		return writeXLSX(w, results)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save serializes results in the format implied by name and stores the
// output with a single Put.
func Save(ctx context.Context, store blobstore.Putter, name string, results iter.Seq[*model.CloseApproach], optFns ...Option) error {
	format, err := FormatForPath(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Write(format, &buf, results, optFns...); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
