package neodb

import (
	"context"
	"iter"
	"slices"
	"time"

	"github.com/hupe1980/neodb/filter"
	"github.com/hupe1980/neodb/model"
)

// DefaultLimit is the number of results Limit yields when n is not positive.
const DefaultLimit = 10

// Query streams the close approaches matching all criteria, in input order.
// Zero criteria match every approach.
//
// The sequence is lazy: each iteration re-scans the database, and stopping
// early stops the scan.
func (db *DB) Query(c filter.Criteria) iter.Seq[*model.CloseApproach] {
	return db.Filter(c.Compile())
}

// Filter streams the close approaches matching every filter in fs, in input
// order. A nil or empty set matches everything.
func (db *DB) Filter(fs *filter.Set) iter.Seq[*model.CloseApproach] {
	return func(yield func(*model.CloseApproach) bool) {
		start := time.Now()
		scanned, matched := 0, 0
		defer func() {
			db.metrics.RecordQuery(scanned, matched, time.Since(start))
			db.logger.LogQuery(context.Background(), fs.String(), scanned, matched)
		}()

		for ca := range db.candidates(fs) {
			scanned++
			if !fs.Matches(ca) {
				continue
			}
			matched++
			if !yield(ca) {
				return
			}
		}
	}
}

// candidates narrows the scan using the posting lists. Every candidate still
// passes through the full filter set, so narrowing never changes results.
func (db *DB) candidates(fs *filter.Set) iter.Seq[*model.CloseApproach] {
	if hazardous, ok := fs.Hazardous(); ok {
		if hazardous {
			return db.rows(db.hazardous)
		}
		return db.rows(db.benign)
	}
	if fs.NeedsNEO() {
		return db.rows(db.linked)
	}
	return slices.Values(db.approaches)
}

// Limit yields at most n items of seq, or DefaultLimit items when n is not
// positive. Iteration of seq stops as soon as the limit is reached.
func Limit[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	if n <= 0 {
		n = DefaultLimit
	}
	return func(yield func(T) bool) {
		i := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}

// QueryBuilder provides a fluent API for querying close approaches.
//
// Example:
//
//	approaches := db.Search().
//		From(filter.On(2020, time.January, 1)).
//		MaxDistance(0.05).
//		Hazardous(true).
//		Limit(5).
//		Collect()
type QueryBuilder struct {
	db       *DB
	criteria filter.Criteria
	extra    []filter.Filter
	limit    int
}

// Search starts a new query with no criteria and no limit.
func (db *DB) Search() *QueryBuilder {
	return &QueryBuilder{db: db}
}

// On restricts results to approaches on the given UTC calendar date.
func (b *QueryBuilder) On(d filter.Date) *QueryBuilder {
	b.criteria.Date = filter.Ptr(d)
	return b
}

// From restricts results to approaches on or after the given date.
func (b *QueryBuilder) From(d filter.Date) *QueryBuilder {
	b.criteria.StartDate = filter.Ptr(d)
	return b
}

// Until restricts results to approaches on or before the given date.
func (b *QueryBuilder) Until(d filter.Date) *QueryBuilder {
	b.criteria.EndDate = filter.Ptr(d)
	return b
}

// MinDistance sets the inclusive lower distance bound in au.
func (b *QueryBuilder) MinDistance(v float64) *QueryBuilder {
	b.criteria.DistanceMin = filter.Ptr(v)
	return b
}

// MaxDistance sets the inclusive upper distance bound in au.
func (b *QueryBuilder) MaxDistance(v float64) *QueryBuilder {
	b.criteria.DistanceMax = filter.Ptr(v)
	return b
}

// MinVelocity sets the inclusive lower velocity bound in km/s.
func (b *QueryBuilder) MinVelocity(v float64) *QueryBuilder {
	b.criteria.VelocityMin = filter.Ptr(v)
	return b
}

// MaxVelocity sets the inclusive upper velocity bound in km/s.
func (b *QueryBuilder) MaxVelocity(v float64) *QueryBuilder {
	b.criteria.VelocityMax = filter.Ptr(v)
	return b
}

// MinDiameter sets the inclusive lower diameter bound in km.
func (b *QueryBuilder) MinDiameter(v float64) *QueryBuilder {
	b.criteria.DiameterMin = filter.Ptr(v)
	return b
}

// MaxDiameter sets the inclusive upper diameter bound in km.
func (b *QueryBuilder) MaxDiameter(v float64) *QueryBuilder {
	b.criteria.DiameterMax = filter.Ptr(v)
	return b
}

// Hazardous requires the linked NEO's hazard flag to equal v.
func (b *QueryBuilder) Hazardous(v bool) *QueryBuilder {
	b.criteria.Hazardous = filter.Ptr(v)
	return b
}

// Criteria replaces all criteria set so far.
func (b *QueryBuilder) Criteria(c filter.Criteria) *QueryBuilder {
	b.criteria = c
	return b
}

// Where adds raw filters that are ANDed with the criteria.
func (b *QueryBuilder) Where(filters ...filter.Filter) *QueryBuilder {
	b.extra = append(b.extra, filters...)
	return b
}

// Limit caps the number of results. Zero or a negative value means no cap.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.limit = n
	return b
}

func (b *QueryBuilder) filters() *filter.Set {
	fs := b.criteria.Compile()
	fs.Filters = append(fs.Filters, b.extra...)
	return fs
}

// Stream returns the lazy result sequence.
func (b *QueryBuilder) Stream() iter.Seq[*model.CloseApproach] {
	seq := b.db.Filter(b.filters())
	if b.limit > 0 {
		return Limit(seq, b.limit)
	}
	return seq
}

// Collect runs the query and returns all results.
func (b *QueryBuilder) Collect() []*model.CloseApproach {
	return slices.Collect(b.Stream())
}

// Count runs the query and returns the number of results.
func (b *QueryBuilder) Count() int {
	n := 0
	for range b.Stream() {
		n++
	}
	return n
}

// First returns the first result in input order, or ErrNotFound.
func (b *QueryBuilder) First() (*model.CloseApproach, error) {
	for ca := range b.Stream() {
		return ca, nil
	}
	return nil, ErrNotFound
}
