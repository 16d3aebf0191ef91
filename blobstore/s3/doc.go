// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.NewFromConfig(ctx, "my-bucket", "neo/")
//	if err != nil { ... }
//	db, err := neodb.Open(ctx, store, "neos.csv", "cad.json.zst")
//
// # Features
//
//   - Ranged GetObject reads
//   - Parallel whole-object downloads through the transfer manager
//   - Put for exporting query results
//   - Configurable key prefix
package s3
