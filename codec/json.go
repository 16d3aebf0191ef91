package codec

import (
	"encoding/json"
	"io"
)

// JSON is the standard-library JSON codec.
//
// It is the most portable option and serves as the reference behaviour for
// GoJSON in tests.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// NewDecoder returns a json.Decoder reading from r.
func (JSON) NewDecoder(r io.Reader) Decoder { return json.NewDecoder(r) }

// NewEncoder returns a json.Encoder writing to w.
func (JSON) NewEncoder(w io.Writer) Encoder { return json.NewEncoder(w) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
var Default Codec = GoJSON{}
