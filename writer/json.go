package writer

import (
	"io"
	"iter"

	"github.com/hupe1980/neodb/codec"
	"github.com/hupe1980/neodb/model"
)

func writeJSON(w io.Writer, results iter.Seq[*model.CloseApproach], c codec.Codec) error {
	records := collect(results)
	enc := c.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// collect never returns nil so that empty results encode as [].
func collect(results iter.Seq[*model.CloseApproach]) []Record {
	records := []Record{}
	for ca := range results {
		records = append(records, NewRecord(ca))
	}
	return records
}
