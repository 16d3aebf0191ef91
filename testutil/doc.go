// Package testutil provides testing utilities for neodb.
//
// This package is intended for use in tests and benchmarks only. It
// generates reproducible synthetic datasets and evaluates criteria with a
// naive reference implementation that query results can be checked against.
//
// # Synthetic Data
//
//	rng := testutil.NewRNG(seed)
//	neos, approaches := rng.Dataset(testutil.DatasetConfig{NEOs: 1000, Approaches: 10000})
//
// # Ground Truth
//
//	want := testutil.ExpectedMatches(approaches, criteria)
//
// The records returned by Dataset are unlinked; link them with neodb.New
// before computing ground truth.
package testutil
