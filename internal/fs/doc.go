// Package fs abstracts the file system operations behind atomic file writes,
// so tests can inject failures.
//
// Production code uses fs.Default ([LocalFS]). Tests wrap it in a [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(dir, fs.Fault{FailAfterBytes: -1, FailOnSync: true})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
package fs
