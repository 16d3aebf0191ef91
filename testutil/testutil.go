package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/hupe1980/neodb/filter"
	"github.com/hupe1980/neodb/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Float64() < p
}

// DatasetConfig shapes a synthetic dataset.
type DatasetConfig struct {
	NEOs       int
	Approaches int
	// NamedRate, UnknownDiameterRate and HazardousRate are NEO probabilities.
	NamedRate           float64
	UnknownDiameterRate float64
	HazardousRate       float64
	// OrphanRate is the probability that an approach references no NEO.
	OrphanRate float64
	// DuplicateRate is the probability that a NEO reuses an earlier designation.
	DuplicateRate float64
}

// DefaultDatasetConfig returns proportions similar to the JPL datasets.
func DefaultDatasetConfig(neos, approaches int) DatasetConfig {
	return DatasetConfig{
		NEOs:                neos,
		Approaches:          approaches,
		NamedRate:           0.05,
		UnknownDiameterRate: 0.9,
		HazardousRate:       0.1,
		OrphanRate:          0.01,
	}
}

// Epoch is the earliest approach time generated by Dataset.
var Epoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Span is the range of approach times generated by Dataset.
const Span = 200 * 365 * 24 * time.Hour

// Dataset generates unlinked NEOs and approaches. Approaches are in
// ascending time order, like the CAD data.
func (r *RNG) Dataset(cfg DatasetConfig) ([]*model.NearEarthObject, []*model.CloseApproach) {
	neos := make([]*model.NearEarthObject, 0, cfg.NEOs)
	for i := range cfg.NEOs {
		des := fmt.Sprintf("%d", 1000+i)
		if i > 0 && r.Chance(cfg.DuplicateRate) {
			des = neos[r.Intn(len(neos))].Designation
		}
		neo := &model.NearEarthObject{
			Designation: des,
			Diameter:    math.NaN(),
			Hazardous:   r.Chance(cfg.HazardousRate),
		}
		if r.Chance(cfg.NamedRate) {
			neo.Name = fmt.Sprintf("Name%d", i)
		}
		if !r.Chance(cfg.UnknownDiameterRate) {
			neo.Diameter = 0.01 + r.Float64()*10
		}
		neos = append(neos, neo)
	}

	approaches := make([]*model.CloseApproach, 0, cfg.Approaches)
	step := Span / time.Duration(max(cfg.Approaches, 1))
	for i := range cfg.Approaches {
		des := fmt.Sprintf("X%d", i)
		if len(neos) > 0 && !r.Chance(cfg.OrphanRate) {
			des = neos[r.Intn(len(neos))].Designation
		}
		approaches = append(approaches, &model.CloseApproach{
			Designation: des,
			Time:        Epoch.Add(time.Duration(i) * step).Truncate(time.Minute),
			Distance:    r.Float64() * 0.5,
			Velocity:    1 + r.Float64()*40,
		})
	}
	return neos, approaches
}

// Criteria returns random criteria; each criterion is set with
// probability p.
func (r *RNG) Criteria(p float64) filter.Criteria {
	var c filter.Criteria

	date := func() *filter.Date {
		t := Epoch.Add(time.Duration(r.Float64() * float64(Span)))
		return filter.Ptr(filter.DateOf(t))
	}
	bounds := func(scale float64) (*float64, *float64) {
		var lo, hi *float64
		if r.Chance(p) {
			lo = filter.Ptr(r.Float64() * scale)
		}
		if r.Chance(p) {
			hi = filter.Ptr(r.Float64() * scale)
		}
		return lo, hi
	}

	if r.Chance(p / 4) {
		c.Date = date()
	}
	if r.Chance(p) {
		c.StartDate = date()
	}
	if r.Chance(p) {
		c.EndDate = date()
	}
	c.DistanceMin, c.DistanceMax = bounds(0.5)
	c.VelocityMin, c.VelocityMax = bounds(41)
	c.DiameterMin, c.DiameterMax = bounds(10)
	if r.Chance(p) {
		c.Hazardous = filter.Ptr(r.Chance(0.5))
	}
	return c
}

// Match evaluates c against a linked approach without using the filter
// package's compiled sets.
func Match(ca *model.CloseApproach, c filter.Criteria) bool {
	y, m, d := ca.Time.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dateOf := func(fd *filter.Date) time.Time {
		return time.Date(fd.Year, fd.Month, fd.Day, 0, 0, 0, 0, time.UTC)
	}

	switch {
	case c.Date != nil && !day.Equal(dateOf(c.Date)):
		return false
	case c.StartDate != nil && day.Before(dateOf(c.StartDate)):
		return false
	case c.EndDate != nil && day.After(dateOf(c.EndDate)):
		return false
	case c.DistanceMin != nil && !(ca.Distance >= *c.DistanceMin):
		return false
	case c.DistanceMax != nil && !(ca.Distance <= *c.DistanceMax):
		return false
	case c.VelocityMin != nil && !(ca.Velocity >= *c.VelocityMin):
		return false
	case c.VelocityMax != nil && !(ca.Velocity <= *c.VelocityMax):
		return false
	}

	needsNEO := c.DiameterMin != nil || c.DiameterMax != nil || c.Hazardous != nil
	if !needsNEO {
		return true
	}
	if ca.NEO == nil {
		return false
	}
	switch {
	case c.DiameterMin != nil && !(ca.NEO.Diameter >= *c.DiameterMin):
		return false
	case c.DiameterMax != nil && !(ca.NEO.Diameter <= *c.DiameterMax):
		return false
	case c.Hazardous != nil && ca.NEO.Hazardous != *c.Hazardous:
		return false
	}
	return true
}

// ExpectedMatches returns the approaches matching c, in input order.
func ExpectedMatches(approaches []*model.CloseApproach, c filter.Criteria) []*model.CloseApproach {
	out := make([]*model.CloseApproach, 0)
	for _, ca := range approaches {
		if Match(ca, c) {
			out = append(out, ca)
		}
	}
	return out
}
