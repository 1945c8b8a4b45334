package pool

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// SlicePool recycles slices of T.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates an empty SlicePool.
func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any { return &[]T{} },
		},
	}
}

// Get returns a slice of exactly size elements and the cleanup function that
// hands it back to the pool. Element values are unspecified.
//
// Example:
//
//	qs, cleanup := pool.GetQuatSlice(frames)
//	defer cleanup()
func (p *SlicePool[T]) Get(size int) ([]T, func()) {
	ptr, _ := p.pool.Get().(*[]T)
	if cap(*ptr) < size {
		*ptr = make([]T, size)
	} else {
		*ptr = (*ptr)[:size]
	}

	return *ptr, func() { p.pool.Put(ptr) }
}

var quatSlicePool = NewSlicePool[mgl32.Quat]()

// GetQuatSlice returns a pooled quaternion slice of the given length.
func GetQuatSlice(size int) ([]mgl32.Quat, func()) {
	return quatSlicePool.Get(size)
}
