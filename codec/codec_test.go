package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Fields []string   `json:"fields"`
	Data   [][]string `json:"data"`
}

func TestCodecs(t *testing.T) {
	in := payload{
		Fields: []string{"des", "cd"},
		Data:   [][]string{{"433", "2020-Jan-01 00:00"}},
	}

	for _, name := range []string{"json", "go-json"} {
		t.Run(name, func(t *testing.T) {
			c, ok := ByName(name)
			require.True(t, ok)
			assert.Equal(t, name, c.Name())

			b, err := c.Marshal(in)
			require.NoError(t, err)

			var out payload
			require.NoError(t, c.Unmarshal(b, &out))
			assert.Equal(t, in, out)

			var streamed payload
			require.NoError(t, c.NewDecoder(strings.NewReader(string(b))).Decode(&streamed))
			assert.Equal(t, in, streamed)

			var buf bytes.Buffer
			enc := c.NewEncoder(&buf)
			enc.SetIndent("", "  ")
			require.NoError(t, enc.Encode(in))
			assert.Contains(t, buf.String(), "\n  \"fields\"")
		})
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshal(t *testing.T) {
	assert.Equal(t, `{"a":1}`, string(MustMarshal(nil, map[string]int{"a": 1})))
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
