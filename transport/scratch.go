package transport

import "sync"

// scratchPool hands out reusable byte slices for whole-frame reads.
// spec.md §5 requires a read to be all-or-nothing: the driver reads an
// entire length-prefixed frame into a scratch buffer before invoking the
// codec, so a cancelled read never leaves cipher/decompression state
// partway through a frame. This adapts
// BX-D-mini-RPC/transport/pool.go's borrow/return ConnPool shape from
// pooling whole connections to pooling these scratch buffers.
type scratchPool struct {
	pool sync.Pool
}

func newScratchPool() *scratchPool {
	return &scratchPool{
		pool: sync.Pool{New: func() any { return make([]byte, 0, 4096) }},
	}
}

// get returns a buffer with at least the given capacity, length n.
func (p *scratchPool) get(n int) []byte {
	buf := p.pool.Get().([]byte)
	if cap(buf) < n {
		return make([]byte, n)
	}
	return buf[:n]
}

// put returns a buffer to the pool for reuse.
func (p *scratchPool) put(buf []byte) {
	p.pool.Put(buf[:0])
}
