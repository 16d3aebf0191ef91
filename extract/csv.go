package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/neodb/model"
)

// NEO CSV column names.
const (
	ColumnDesignation = "pdes"
	ColumnName        = "name"
	ColumnDiameter    = "diameter"
	ColumnHazardous   = "pha"
)

// DecodeNEOs reads NEOs from CSV with a header row. Extra columns are ignored.
func DecodeNEOs(r io.Reader, optFns ...Option) ([]*model.NearEarthObject, error) {
	opts := applyOptions(optFns)
	return decodeNEOs("neos", r, &opts)
}

func decodeNEOs(source string, r io.Reader, opts *options) ([]*model.NearEarthObject, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w: empty file", source, ErrMissingColumn)
		}
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := cols[h]; !ok {
			cols[h] = i
		}
	}

	var idx [4]int
	for i, name := range []string{ColumnDesignation, ColumnName, ColumnDiameter, ColumnHazardous} {
		pos, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s", source, ErrMissingColumn, name)
		}
		idx[i] = pos
	}
	width := max(idx[0], idx[1], idx[2], idx[3]) + 1

	var neos []*model.NearEarthObject
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}

		if len(rec) < width {
			if err := opts.handle(&RecordError{Source: source, Record: n, Err: ErrShortRecord}); err != nil {
				return nil, err
			}
			continue
		}

		neo, err := model.NewNearEarthObject(rec[idx[0]], rec[idx[1]], rec[idx[2]], rec[idx[3]])
		if err != nil {
			if err := opts.handle(&RecordError{Source: source, Record: n, Err: err}); err != nil {
				return nil, err
			}
			continue
		}
		neos = append(neos, neo)
	}

	opts.logger.Debug("decoded neos", "source", source, "count", len(neos))
	return neos, nil
}
