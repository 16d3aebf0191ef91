// Package mmap provides read-only memory-mapped file access.
//
// LocalStore uses it to hand file contents to the decoders without copying
// them through a read buffer:
//
//	m, err := mmap.Open("neos.csv")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// On Unix the file is mapped with mmap(2) and madvise(2) hints are honored.
// Elsewhere the file is read into memory and Advise is a no-op.
package mmap
