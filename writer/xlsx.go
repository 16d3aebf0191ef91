package writer

import (
	"io"
	"iter"

	"github.com/hupe1980/neodb/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet XLSX output is written to.
const SheetName = "Approaches"

func writeXLSX(w io.Writer, results iter.Seq[*model.CloseApproach]) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}
	if err := sw.SetColWidth(1, len(Columns), 20); err != nil {
		return err
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	n := 2
	for ca := range results {
		cell, err := excelize.CoordinatesToCellName(1, n)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells(ca)); err != nil {
			return err
		}
		n++
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

// cells is row with native numeric and boolean cell values.
func cells(ca *model.CloseApproach) []any {
	out := []any{ca.TimeString(), ca.Distance, ca.Velocity, ca.Designation, nil, nil, nil}
	if neo, err := ca.LinkedNEO(); err == nil {
		out[4] = neo.Name
		if neo.HasDiameter() {
			out[5] = neo.Diameter
		}
		out[6] = neo.Hazardous
	}
	return out
}
