// Package hash provides the checksums used to verify uploaded results.
package hash
