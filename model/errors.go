package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoLinkedNEO is returned when NEO-level data is requested from an
	// approach whose designation did not resolve to a known NEO.
	ErrNoLinkedNEO = errors.New("no linked NEO")

	// ErrEmptyDesignation is returned when a record has no designation.
	ErrEmptyDesignation = errors.New("empty designation")
)

// ParseError reports a raw field that could not be converted while
// constructing a record.
//
// The original underlying error can be accessed via errors.Unwrap.
type ParseError struct {
	Field string
	Value string
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }
