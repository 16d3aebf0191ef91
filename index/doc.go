// Package index provides exact-match string key indexes used by neodb.
//
// Two strategies are available:
//
//   - StrategyMap: a Go map keyed by the full string (default, O(1) lookups)
//   - StrategyTrie: a character trie (O(len(key)) lookups, shares prefixes)
//
// Both strategies have identical semantics: exact matching, no normalization,
// and Upsert replaces the previous value for a key.
//
// Indexes are not synchronized. They are filled once while a database is
// constructed and are read-only afterwards, which makes concurrent lookups safe.
package index
