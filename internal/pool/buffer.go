// Package pool provides pooled byte buffers and scratch slices for the clip
// encoder and the library writer.
package pool

import (
	"io"
	"sync"
)

const (
	ClipBufferDefaultSize      = 1024 * 16        // 16KiB
	ClipBufferMaxThreshold     = 1024 * 256       // 256KiB
	LibraryBufferDefaultSize   = 1024 * 1024      // 1MiB
	LibraryBufferMaxThreshold  = 1024 * 1024 * 16 // 16MiB
	largeBufferGrowthThreshold = 4 * ClipBufferDefaultSize
)

// ByteBuffer is a growable byte slice that can be written through and patched in place.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty ByteBuffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the written bytes.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of written bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow makes room for n more bytes without another reallocation.
//
// Small buffers grow by ClipBufferDefaultSize, larger ones by a quarter of
// their capacity, and never by less than n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := ClipBufferDefaultSize
	if cap(bb.B) > largeBufferGrowthThreshold {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	buf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(buf, bb.B)
	bb.B = buf
}

// Extend appends n zero bytes and returns the position of the first one.
func (bb *ByteBuffer) Extend(n int) int {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
	clear(bb.B[start:])

	return start
}

// Write appends data; it never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the buffer contents to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers, dropping any that grew past maxThreshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial capacity.
// A maxThreshold of 0 keeps buffers of any size.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. The caller must not use bb afterwards.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	clipPool    = NewByteBufferPool(ClipBufferDefaultSize, ClipBufferMaxThreshold)
	libraryPool = NewByteBufferPool(LibraryBufferDefaultSize, LibraryBufferMaxThreshold)
)

// GetClipBuffer returns a buffer sized for one encoded clip.
func GetClipBuffer() *ByteBuffer {
	return clipPool.Get()
}

// PutClipBuffer recycles a buffer obtained from GetClipBuffer.
func PutClipBuffer(bb *ByteBuffer) {
	clipPool.Put(bb)
}

// GetLibraryBuffer returns a buffer sized for a clip library payload.
func GetLibraryBuffer() *ByteBuffer {
	return libraryPool.Get()
}

// PutLibraryBuffer recycles a buffer obtained from GetLibraryBuffer.
func PutLibraryBuffer(bb *ByteBuffer) {
	libraryPool.Put(bb)
}
