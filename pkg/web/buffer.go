package web

import (
	"bytes"
	"sync"
)

// maxPooledBuffer is the largest buffer capacity that goes back into the
// pool; anything bigger is left for the garbage collector
const maxPooledBuffer = 1 << 20

var (
	initBufferPool sync.Once
	bufferPool     *BufferPool
)

type BufferPool struct {
	pool sync.Pool
}

func newBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// OpenBufferPool returns the shared buffer pool, creating it on first use
func OpenBufferPool() *BufferPool {
	initBufferPool.Do(func() {
		bufferPool = newBufferPool()
	})
	return bufferPool
}

func (bp *BufferPool) Get() *bytes.Buffer {
	return bp.pool.Get().(*bytes.Buffer)
}

func (bp *BufferPool) Put(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	bp.pool.Put(buf)
}
