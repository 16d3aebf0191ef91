package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when a required CSV column or CAD field is absent.
	ErrMissingColumn = errors.New("missing column")

	// ErrShortRecord is returned when a record has fewer values than the
	// columns it must provide.
	ErrShortRecord = errors.New("short record")
)

// RecordError reports a record that could not be converted. Record is the
// 1-based position of the record within its source, excluding the CSV header.
type RecordError struct {
	Source string
	Record int
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: record %d: %v", e.Source, e.Record, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
