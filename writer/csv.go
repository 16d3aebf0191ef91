package writer

import (
	"encoding/csv"
	"io"
	"iter"

	"github.com/hupe1980/neodb/model"
)

func writeCSV(w io.Writer, results iter.Seq[*model.CloseApproach]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for ca := range results {
		if err := cw.Write(row(ca)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
