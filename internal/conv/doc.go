// Package conv provides checked integer conversions.
package conv
