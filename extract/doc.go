// Package extract loads NEO and close approach records from a blob store.
//
// NEOs come from a CSV file with a header row naming at least the columns
// pdes, name, diameter and pha. Close approaches come from a JSON document in
// the JPL SBDB close-approach API shape:
//
//	{"fields": ["des", "orbit_id", "jd", "cd", "dist", ...], "data": [[...], ...]}
//
// Columns are located through the fields list, so reordered documents decode
// correctly. Either file may be compressed; the codec is chosen from the name
// suffix (.gz, .zst, .lz4).
//
// Records are returned unlinked, ready for neodb.New.
package extract
