package benchmark_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/neodb"
	"github.com/hupe1980/neodb/filter"
	"github.com/hupe1980/neodb/index"
	"github.com/hupe1980/neodb/testutil"
)

// The JPL datasets hold about 24k NEOs and 400k close approaches.
const (
	numNEOs       = 24_000
	numApproaches = 400_000
)

func newDB(b *testing.B, strategy index.Strategy) *neodb.DB {
	b.Helper()
	neos, approaches := testutil.NewRNG(1).Dataset(testutil.DefaultDatasetConfig(numNEOs, numApproaches))
	db, err := neodb.New(neos, approaches, neodb.WithIndexStrategy(strategy))
	if err != nil {
		b.Fatal(err)
	}
	return db
}

func BenchmarkLink(b *testing.B) {
	for _, strategy := range []index.Strategy{index.StrategyMap, index.StrategyTrie} {
		b.Run(strategy.String(), func(b *testing.B) {
			b.ReportAllocs()
			cfg := testutil.DefaultDatasetConfig(numNEOs, numApproaches)

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				neos, approaches := testutil.NewRNG(int64(i)).Dataset(cfg)
				b.StartTimer()

				if _, err := neodb.New(neos, approaches, neodb.WithIndexStrategy(strategy)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLookup(b *testing.B) {
	for _, strategy := range []index.Strategy{index.StrategyMap, index.StrategyTrie} {
		b.Run(strategy.String(), func(b *testing.B) {
			db := newDB(b, strategy)
			keys := make([]string, 1024)
			for i := range keys {
				keys[i] = fmt.Sprintf("%d", 1000+(i*37)%numNEOs)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, ok := db.NEOByDesignation(keys[i%len(keys)]); !ok {
					b.Fatal("missing designation")
				}
			}
		})
	}
}

func BenchmarkQuery(b *testing.B) {
	db := newDB(b, index.StrategyMap)

	cases := []struct {
		name     string
		criteria filter.Criteria
	}{
		{"all", filter.Criteria{}},
		{"distance", filter.Criteria{DistanceMax: filter.Ptr(0.01)}},
		{"hazardous", filter.Criteria{Hazardous: filter.Ptr(true)}},
		{"diameter", filter.Criteria{DiameterMin: filter.Ptr(1.0)}},
		{"date-range", filter.Criteria{
			StartDate: filter.Ptr(filter.On(2000, 1, 1)),
			EndDate:   filter.Ptr(filter.On(2020, 12, 31)),
		}},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				n := 0
				for range db.Query(tc.criteria) {
					n++
				}
				_ = n
			}
		})
	}
}

func BenchmarkQuery_Parallel(b *testing.B) {
	db := newDB(b, index.StrategyMap)
	c := filter.Criteria{Hazardous: filter.Ptr(true), DistanceMax: filter.Ptr(0.05)}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			for range neodb.Limit(db.Query(c), neodb.DefaultLimit) {
			}
		}
	})
}
