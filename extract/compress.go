package extract

import (
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream compression by file suffix.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = ".gz"
	CompressionZstd Compression = ".zst"
	CompressionLZ4  Compression = ".lz4"
)

// DetectCompression returns the compression implied by name's suffix.
func DetectCompression(name string) Compression {
	switch c := Compression(strings.ToLower(path.Ext(name))); c {
	case CompressionGzip, CompressionZstd, CompressionLZ4:
		return c
	default:
		return CompressionNone
	}
}

// Decompress wraps r with a decoder for c. The returned reader must be closed.
func Decompress(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}
