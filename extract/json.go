package extract

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/neodb/model"
)

// CAD field names.
const (
	FieldDesignation = "des"
	FieldTime        = "cd"
	FieldDistance    = "dist"
	FieldVelocity    = "v_rel"
)

// canonicalCAD gives the column positions used by the CAD API when a
// document carries no fields list.
var canonicalCAD = map[string]int{
	FieldDesignation: 0,
	FieldTime:        3,
	FieldDistance:    4,
	FieldVelocity:    7,
}

type cadDocument struct {
	Count  any      `json:"count"`
	Fields []string `json:"fields"`
	Data   [][]any  `json:"data"`
}

// DecodeApproaches reads close approaches from a CAD JSON document.
func DecodeApproaches(r io.Reader, optFns ...Option) ([]*model.CloseApproach, error) {
	opts := applyOptions(optFns)
	return decodeApproaches("approaches", r, &opts)
}

func decodeApproaches(source string, r io.Reader, opts *options) ([]*model.CloseApproach, error) {
	var doc cadDocument
	if err := opts.codec.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", source, opts.codec.Name(), err)
	}

	idx, err := cadColumns(doc.Fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	width := max(idx[0], idx[1], idx[2], idx[3]) + 1

	if want, ok := cadCount(doc.Count); ok && want != len(doc.Data) {
		opts.logger.Warn("close approach count mismatch",
			"source", source,
			"count", want,
			"records", len(doc.Data),
		)
	}

	approaches := make([]*model.CloseApproach, 0, len(doc.Data))
	for i, row := range doc.Data {
		n := i + 1
		if len(row) < width {
			if err := opts.handle(&RecordError{Source: source, Record: n, Err: ErrShortRecord}); err != nil {
				return nil, err
			}
			continue
		}

		ca, err := model.NewCloseApproach(
			cadString(row[idx[0]]),
			cadString(row[idx[1]]),
			cadString(row[idx[2]]),
			cadString(row[idx[3]]),
		)
		if err != nil {
			if err := opts.handle(&RecordError{Source: source, Record: n, Err: err}); err != nil {
				return nil, err
			}
			continue
		}
		approaches = append(approaches, ca)
	}

	opts.logger.Debug("decoded close approaches", "source", source, "count", len(approaches))
	return approaches, nil
}

func cadColumns(fields []string) ([4]int, error) {
	names := [4]string{FieldDesignation, FieldTime, FieldDistance, FieldVelocity}
	var idx [4]int

	if len(fields) == 0 {
		for i, name := range names {
			idx[i] = canonicalCAD[name]
		}
		return idx, nil
	}

	pos := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, ok := pos[f]; !ok {
			pos[f] = i
		}
	}
	for i, name := range names {
		p, ok := pos[name]
		if !ok {
			return idx, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		idx[i] = p
	}
	return idx, nil
}

// cadString renders a decoded JSON scalar as the raw string the record
// constructors expect. null becomes the empty string.
func cadString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func cadCount(v any) (int, bool) {
	switch x := v.(type) {
	case string:
		n, err := strconv.Atoi(x)
		return n, err == nil
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}
