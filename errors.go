package neodb

import (
	"errors"

	"github.com/hupe1980/neodb/internal/resource"
	"github.com/hupe1980/neodb/model"
)

var (
	// ErrNotFound is returned when a query yields no result where one is required.
	ErrNotFound = errors.New("not found")

	// ErrNoLinkedNEO is returned when NEO-level data is requested from an
	// unlinked close approach. It is the same value as model.ErrNoLinkedNEO.
	ErrNoLinkedNEO = model.ErrNoLinkedNEO

	// ErrTooManyApproaches is returned when the approach collection cannot be
	// addressed by 32-bit row ids.
	ErrTooManyApproaches = errors.New("too many close approaches")

	// ErrMemoryLimitExceeded is returned by Open when an input file exceeds
	// the budget set with WithMemoryLimit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)
