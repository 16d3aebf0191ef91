package index

import "fmt"

// Index maps string keys to values.
type Index[V any] interface {
	// Lookup returns the value stored for key.
	Lookup(key string) (V, bool)
	// Upsert stores v for key, replacing any previous value.
	Upsert(key string, v V)
	// Len returns the number of distinct keys.
	Len() int
}

// Strategy selects an Index implementation.
type Strategy uint8

const (
	// StrategyMap uses a hash map from the full key.
	StrategyMap Strategy = iota
	// StrategyTrie uses a byte trie.
	StrategyTrie
)

// String returns the stable name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyMap:
		return "map"
	case StrategyTrie:
		return "trie"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// ParseStrategy parses a strategy name as returned by Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "map":
		return StrategyMap, nil
	case "trie":
		return StrategyTrie, nil
	default:
		return 0, fmt.Errorf("index: unknown strategy %q", s)
	}
}

// New creates an empty index using the given strategy.
func New[V any](s Strategy) Index[V] {
	if s == StrategyTrie {
		return NewTrie[V]()
	}
	return NewMap[V]()
}

// Append adds v to the list stored under key, preserving insertion order.
func Append[V any](idx Index[[]V], key string, v V) {
	list, _ := idx.Lookup(key)
	idx.Upsert(key, append(list, v))
}
