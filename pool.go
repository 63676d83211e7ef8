package mqttwire

import (
	"sync"
)

// maxPooledBuffer caps the capacity of buffers returned to the pool (64KB).
const maxPooledBuffer = 65536

// encodeBufferPool holds scratch buffers for WritePacket and Encoder.
var encodeBufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 512)
		return &b
	},
}

// getBuffer returns a pooled buffer of length n.
func getBuffer(n int) *[]byte {
	b := encodeBufferPool.Get().(*[]byte)
	if cap(*b) < n {
		*b = make([]byte, n)
	}
	*b = (*b)[:n]
	return b
}

// putBuffer returns a buffer to the pool.
func putBuffer(b *[]byte) {
	if b == nil || cap(*b) > maxPooledBuffer {
		return
	}
	*b = (*b)[:0]
	encodeBufferPool.Put(b)
}
