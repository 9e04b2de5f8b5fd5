// Package buffer provides a stack-disciplined arena of fixed-size scratch
// buffers for allocation-free block rendering.
//
// An [Arena] is sized once at construction. Callers reserve buffers as they
// descend into nested processing stages and release back to a mark when the
// stage returns, so the same memory is reused by sibling stages. Reserving
// past the configured capacity is reported instead of indexing out of range.
package buffer
