package neodb

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/neodb/index"
	"github.com/hupe1980/neodb/internal/conv"
	"github.com/hupe1980/neodb/model"
)

// DB is a linked, read-only database of NEOs and close approaches.
//
// All methods are safe for concurrent use once New has returned.
type DB struct {
	neos       []*model.NearEarthObject
	approaches []*model.CloseApproach

	byDesignation index.Index[*model.NearEarthObject]
	byName        index.Index[*model.NearEarthObject]
	byApproach    index.Index[[]*model.CloseApproach]

	// Posting lists of row ids into approaches.
	hazardous *roaring.Bitmap // linked, NEO hazardous
	benign    *roaring.Bitmap // linked, NEO not hazardous
	orphans   *roaring.Bitmap // unlinked
	linked    *roaring.Bitmap // hazardous OR benign

	duplicates []string
	stats      Stats

	metrics MetricsCollector
	logger  *Logger
}

// Stats summarizes the contents of a database.
type Stats struct {
	NEOs       int    `json:"neos"`
	Named      int    `json:"named"`
	Approaches int    `json:"approaches"`
	Linked     int    `json:"linked"`
	Orphans    int    `json:"orphans"`
	Hazardous  int    `json:"hazardous_approaches"`
	Duplicates int    `json:"duplicate_designations"`
	Strategy   string `json:"index_strategy"`
}

// New links the given records and builds the database indexes.
//
// As a precondition the records are unlinked: every NEO has no approaches and
// every approach has a nil NEO. New mutates the records in place: each NEO's
// Approaches receives its approaches in input order and each approach's NEO
// is set. Approaches whose designation matches no NEO stay unlinked.
//
// When several NEOs share a designation the last one wins; earlier ones are
// not indexed and receive no approaches. Nil records are ignored.
func New(neos []*model.NearEarthObject, approaches []*model.CloseApproach, optFns ...Option) (*DB, error) {
	if _, err := conv.IntToUint32(len(approaches)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTooManyApproaches, err)
	}

	opts := applyOptions(optFns)

	db := &DB{
		neos:          compact(neos),
		approaches:    compact(approaches),
		byDesignation: index.New[*model.NearEarthObject](opts.strategy),
		byName:        index.New[*model.NearEarthObject](opts.strategy),
		byApproach:    index.New[[]*model.CloseApproach](opts.strategy),
		hazardous:     roaring.New(),
		benign:        roaring.New(),
		orphans:       roaring.New(),
		linked:        roaring.New(),
		metrics:       opts.metricsCollector,
		logger:        opts.logger,
	}

	start := time.Now()
	db.link()
	db.stats = db.computeStats(opts.strategy)

	ctx := context.Background()
	db.logger.LogLink(ctx, db.stats)
	db.logger.LogOrphans(ctx, db.stats.Orphans, db.orphanSample())
	db.metrics.RecordLink(db.stats, time.Since(start))

	return db, nil
}

// link performs the single mutation pass over the records.
func (db *DB) link() {
	for _, ca := range db.approaches {
		index.Append(db.byApproach, ca.Designation, ca)
	}

	ctx := context.Background()
	for _, neo := range db.neos {
		if _, dup := db.byDesignation.Lookup(neo.Designation); dup {
			db.duplicates = append(db.duplicates, neo.Designation)
			db.logger.LogDuplicate(ctx, neo.Designation)
		}
		db.byDesignation.Upsert(neo.Designation, neo)
	}

	for _, neo := range db.neos {
		if winner, _ := db.byDesignation.Lookup(neo.Designation); winner != neo {
			continue
		}
		if neo.Named() {
			db.byName.Upsert(neo.Name, neo)
		}
		matched, ok := db.byApproach.Lookup(neo.Designation)
		if !ok {
			continue
		}
		neo.Approaches = append(neo.Approaches, matched...)
		for _, ca := range matched {
			ca.NEO = neo
		}
	}

	for i, ca := range db.approaches {
		row := uint32(i)
		switch {
		case ca.NEO == nil:
			db.orphans.Add(row)
		case ca.NEO.Hazardous:
			db.hazardous.Add(row)
			db.linked.Add(row)
		default:
			db.benign.Add(row)
			db.linked.Add(row)
		}
	}
	db.hazardous.RunOptimize()
	db.benign.RunOptimize()
	db.orphans.RunOptimize()
	db.linked.RunOptimize()
}

func (db *DB) computeStats(strategy index.Strategy) Stats {
	s := Stats{
		NEOs:       len(db.neos),
		Approaches: len(db.approaches),
		Orphans:    int(db.orphans.GetCardinality()),
		Hazardous:  int(db.hazardous.GetCardinality()),
		Duplicates: len(db.duplicates),
		Strategy:   strategy.String(),
	}
	s.Linked = s.Approaches - s.Orphans
	for _, neo := range db.neos {
		if neo.Named() {
			s.Named++
		}
	}
	return s
}

func (db *DB) orphanSample() string {
	if db.orphans.IsEmpty() {
		return ""
	}
	return db.approaches[db.orphans.Minimum()].Designation
}

// NEOByDesignation returns the NEO with exactly the given primary designation.
func (db *DB) NEOByDesignation(designation string) (*model.NearEarthObject, bool) {
	neo, ok := db.byDesignation.Lookup(designation)
	db.metrics.RecordLookup("designation", ok)
	db.logger.LogLookup(context.Background(), "designation", designation, ok)
	return neo, ok
}

// NEOByName returns the NEO with exactly the given name.
//
// Unnamed NEOs are not indexed, so the empty name never matches. If several
// NEOs share a name, the last one in input order is returned.
func (db *DB) NEOByName(name string) (*model.NearEarthObject, bool) {
	if name == "" {
		db.metrics.RecordLookup("name", false)
		return nil, false
	}
	neo, ok := db.byName.Lookup(name)
	db.metrics.RecordLookup("name", ok)
	db.logger.LogLookup(context.Background(), "name", name, ok)
	return neo, ok
}

// ApproachesFor returns the approaches recorded under a designation, in input
// order, whether or not a NEO with that designation exists.
func (db *DB) ApproachesFor(designation string) []*model.CloseApproach {
	list, _ := db.byApproach.Lookup(designation)
	return slices.Clone(list)
}

// NEOs iterates all NEOs in input order.
func (db *DB) NEOs() iter.Seq[*model.NearEarthObject] {
	return slices.Values(db.neos)
}

// Approaches iterates all close approaches in input order.
func (db *DB) Approaches() iter.Seq[*model.CloseApproach] {
	return slices.Values(db.approaches)
}

// Orphans iterates the approaches that could not be linked, in input order.
func (db *DB) Orphans() iter.Seq[*model.CloseApproach] {
	return db.rows(db.orphans)
}

// Duplicates returns the designations that occurred more than once, once per
// extra occurrence.
func (db *DB) Duplicates() []string {
	return slices.Clone(db.duplicates)
}

// Stats returns summary statistics computed at construction.
func (db *DB) Stats() Stats {
	return db.stats
}

// rows iterates the approaches addressed by a posting list in ascending row
// order, which is input order.
func (db *DB) rows(bm *roaring.Bitmap) iter.Seq[*model.CloseApproach] {
	return func(yield func(*model.CloseApproach) bool) {
		it := bm.Iterator()
		for it.HasNext() {
			if !yield(db.approaches[it.Next()]) {
				return
			}
		}
	}
}

func compact[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
