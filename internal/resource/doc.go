// Package resource bounds the resources a neodb process consumes: the bytes
// of input data held in memory, the read throughput against a blob store and
// the number of queries evaluated concurrently.
//
// A nil *Controller is valid and imposes no limits.
package resource
