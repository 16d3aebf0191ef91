// Package codec centralizes JSON encoding for dataset loading and result output.
//
// Codecs are selected by stable name so the CLI and configuration can refer
// to them ("json", "go-json").
package codec

import (
	"fmt"
	"io"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// NewDecoder returns a streaming decoder reading from r.
	NewDecoder(r io.Reader) Decoder
	// NewEncoder returns a streaming encoder writing to w.
	NewEncoder(w io.Writer) Encoder
	Name() string
}

// Decoder reads JSON values from a stream.
type Decoder interface {
	Decode(v any) error
}

// Encoder writes JSON values to a stream.
type Encoder interface {
	Encode(v any) error
	SetIndent(prefix, indent string)
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
