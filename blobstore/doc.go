// Package blobstore provides read access to the NEO and close approach data
// files wherever they live.
//
// Store is the interface the loader reads through. Implementations must be
// safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local file system with mmap support
//   - MemoryStore: in-memory blobs for tests and embedding
//   - ThrottledStore: wraps any Store with a read throughput limit
//   - s3.Store: Amazon S3 with ranged and parallel downloads
//   - minio.Store: MinIO and other S3-compatible object stores
//
// Stores that also implement Putter can receive exported query results.
package blobstore
