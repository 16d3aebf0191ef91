// Package neodb provides an embedded, read-only database of near-Earth
// objects (NEOs) and their close approaches to Earth.
//
// A database is built once from two unlinked record collections. Construction
// resolves every close approach's designation into a reference to its NEO,
// fills each NEO's approach list, and builds the indexes used for point
// lookups and filtered queries. Afterwards the graph is immutable and safe
// for concurrent readers.
//
// # Quick Start
//
// Load the NASA datasets and link them:
//
//	ctx := context.Background()
//	db, err := neodb.Open(ctx, blobstore.NewLocalStore("./data"),
//	    "neos.csv", "cad.json.gz",
//	    neodb.WithLogLevel(slog.LevelInfo),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Point lookups:
//
//	neo, ok := db.NEOByDesignation("433")
//	neo, ok = db.NEOByName("Halley")
//
// Queries stream matching approaches lazily, in input order:
//
//	for ca := range db.Query(filter.Criteria{
//	    StartDate: filter.Ptr(filter.On(2020, time.January, 1)),
//	    Hazardous: filter.Ptr(true),
//	}) {
//	    fmt.Println(ca)
//	}
//
// The fluent builder reads the same way:
//
//	approaches := db.Search().
//	    From(filter.On(2020, time.January, 1)).
//	    MaxDistance(0.05).
//	    Limit(5).
//	    Collect()
//
// # Unlinked approaches
//
// An approach whose designation matches no NEO is kept with a nil NEO. It
// never satisfies diameter or hazardous criteria, and is reported by Orphans
// and Stats.
//
// # Index strategies
//
// Designations and names are indexed with a hash map by default. Use
// WithIndexStrategy(index.StrategyTrie) to index them with a character trie.
package neodb
