// Package cache provides byte-budgeted LRU caches for rendered responses.
//
// ShardedLRU spreads keys over 16 shards, each an LRU with its own mutex, so
// concurrent requests rarely contend. When a resource.Controller is supplied,
// cached bytes count against its memory budget and entries that would exceed
// it are not admitted.
package cache
