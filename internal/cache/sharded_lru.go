package cache

import (
	"hash/maphash"

	"github.com/hupe1980/neodb/internal/resource"
)

const numShards = 16

// ShardedLRU distributes entries across shards to reduce lock contention.
type ShardedLRU struct {
	shards [numShards]*LRU
	seed   maphash.Seed
}

var _ Cache = (*ShardedLRU)(nil)

// NewShardedLRU creates a sharded cache. The capacity is divided evenly
// across all shards.
func NewShardedLRU(capacity int64, rc *resource.Controller) *ShardedLRU {
	shardCapacity := max(capacity/numShards, 1)

	s := &ShardedLRU{seed: maphash.MakeSeed()}
	for i := range numShards {
		s.shards[i] = NewLRU(shardCapacity, rc)
	}
	return s
}

func (s *ShardedLRU) shard(key string) *LRU {
	return s.shards[maphash.String(s.seed, key)%numShards]
}

// Get returns a cached value.
func (s *ShardedLRU) Get(key string) ([]byte, bool) {
	return s.shard(key).Get(key)
}

// Set caches a value.
func (s *ShardedLRU) Set(key string, b []byte) {
	s.shard(key).Set(key, b)
}

// Stats returns aggregated hit/miss statistics.
func (s *ShardedLRU) Stats() (hits, misses int64) {
	for _, shard := range s.shards {
		h, m := shard.Stats()
		hits += h
		misses += m
	}
	return hits, misses
}

// Size returns the total size across all shards.
func (s *ShardedLRU) Size() int64 {
	var total int64
	for _, shard := range s.shards {
		total += shard.Size()
	}
	return total
}
