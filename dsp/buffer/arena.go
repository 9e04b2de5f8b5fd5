package buffer

import "fmt"

// Arena hands out fixed-length buffers from a single backing allocation in
// LIFO order.
type Arena[T any] struct {
	data  []T
	size  int
	count int
	next  int
}

// NewArena allocates count buffers of size elements each.
func NewArena[T any](count, size int) (*Arena[T], error) {
	if count <= 0 {
		return nil, fmt.Errorf("arena buffer count must be > 0: %d", count)
	}
	if size <= 0 {
		return nil, fmt.Errorf("arena buffer size must be > 0: %d", size)
	}
	return &Arena[T]{
		data:  make([]T, count*size),
		size:  size,
		count: count,
	}, nil
}

// Size returns the length of every buffer.
func (a *Arena[T]) Size() int { return a.size }

// Cap returns the number of buffers the arena holds.
func (a *Arena[T]) Cap() int { return a.count }

// Used returns the number of currently reserved buffers.
func (a *Arena[T]) Used() int { return a.next }

// Mark returns the current reservation depth for a later Release.
func (a *Arena[T]) Mark() int { return a.next }

// Release returns every buffer reserved after mark to the arena.
func (a *Arena[T]) Release(mark int) {
	if mark < 0 {
		mark = 0
	}
	if mark < a.next {
		a.next = mark
	}
}

// Reset releases all buffers.
func (a *Arena[T]) Reset() { a.next = 0 }

// Reserve returns the next free buffer. It reports false when the arena is
// exhausted. Buffer contents are whatever the previous user left behind.
func (a *Arena[T]) Reserve() ([]T, bool) {
	if a.next >= a.count {
		return nil, false
	}
	start := a.next * a.size
	a.next++
	return a.data[start : start+a.size : start+a.size], true
}

// ReserveN fills dst with len(dst) buffers. Either all are reserved or none
// are and false is returned.
func (a *Arena[T]) ReserveN(dst [][]T) bool {
	if a.count-a.next < len(dst) {
		return false
	}
	for i := range dst {
		dst[i], _ = a.Reserve()
	}
	return true
}
