package pool

import (
	"sync"
)

// maxRetainedFactor limits how far a returned buffer may have grown past the
// pool's initial size before it is dropped instead of kept.
const maxRetainedFactor = 64

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are available
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse
func (bp *BufferPool) Put(buffer *[]byte) {
	if cap(*buffer) > bp.MaxRetained() {
		return
	}
	// Reset buffer length but keep capacity
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// Size returns the initial capacity of buffers created by the pool
func (bp *BufferPool) Size() int {
	return bp.size
}

// MaxRetained returns the largest capacity a buffer may have to be kept
func (bp *BufferPool) MaxRetained() int {
	return bp.size * maxRetainedFactor
}
