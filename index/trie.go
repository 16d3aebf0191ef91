package index

// Trie is an Index backed by a byte trie.
//
// Keys are walked byte by byte, so designations that share long prefixes
// (e.g. "2020 AB1", "2020 AB2") share nodes and invalid UTF-8 keys stay
// distinct.
type Trie[V any] struct {
	root *trieNode[V]
	size int
}

type trieNode[V any] struct {
	children map[byte]*trieNode[V]
	value    V
	terminal bool
}

// NewTrie creates a new trie index.
func NewTrie[V any]() *Trie[V] {
	return &Trie[V]{root: &trieNode[V]{}}
}

// Lookup returns the value for the given key.
// Only complete keys match; a prefix of a stored key is a miss.
func (t *Trie[V]) Lookup(key string) (V, bool) {
	node := t.root
	for i := 0; i < len(key); i++ {
		next, ok := node.children[key[i]]
		if !ok {
			var zero V
			return zero, false
		}
		node = next
	}
	return node.value, node.terminal
}

// Upsert stores the value for the given key.
func (t *Trie[V]) Upsert(key string, v V) {
	node := t.root
	for i := 0; i < len(key); i++ {
		b := key[i]
		if node.children == nil {
			node.children = make(map[byte]*trieNode[V])
		}
		next, ok := node.children[b]
		if !ok {
			next = &trieNode[V]{}
			node.children[b] = next
		}
		node = next
	}
	if !node.terminal {
		t.size++
	}
	node.value = v
	node.terminal = true
}

// Len returns the number of keys.
func (t *Trie[V]) Len() int {
	return t.size
}
