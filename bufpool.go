package efx

import (
	"bytes"
	"math/bits"
	"sync"
)

// DefaultBufferSize is the smallest block a growable buffer rents.
const DefaultBufferSize = 8192

const (
	minBlockShift = 12 // 4 KiB
	maxBlockShift = 26 // 64 MiB
)

// blockPools holds one pool per power-of-two block size, so a block rented
// for n bytes is always at least n bytes long.
var blockPools [maxBlockShift - minBlockShift + 1]sync.Pool

func blockClass(n int) int {
	if n <= 1<<minBlockShift {
		return 0
	}
	return bits.Len(uint(n-1)) - minBlockShift
}

// rentBlock returns a block of at least n bytes. Its contents are undefined.
func rentBlock(n int) []byte {
	class := blockClass(n)
	if class >= len(blockPools) {
		return make([]byte, n)
	}
	if p, ok := blockPools[class].Get().(*[]byte); ok {
		return (*p)[:cap(*p)]
	}
	return make([]byte, 1<<(class+minBlockShift))
}

// returnBlock hands b back to its size class. Blocks that rentBlock did not
// produce are left to the garbage collector.
func returnBlock(b []byte) {
	c := cap(b)
	if c < 1<<minBlockShift || c&(c-1) != 0 {
		return
	}
	class := bits.Len(uint(c)) - 1 - minBlockShift
	if class >= len(blockPools) {
		return
	}
	b = b[:c]
	blockPools[class].Put(&b)
}

var pooledBuffers = sync.Pool{
	New: func() any { return new(PooledBuffer) },
}

var chainedBuffers = sync.Pool{
	New: func() any { return new(ChainedBuffer) },
}

// AcquirePooledBuffer returns an empty PooledBuffer. Pair every call with
// ReleasePooledBuffer, usually through defer.
func AcquirePooledBuffer() *PooledBuffer {
	return pooledBuffers.Get().(*PooledBuffer)
}

// ReleasePooledBuffer resets b and returns it, with its storage, to the pools.
// b must not be used afterwards.
func ReleasePooledBuffer(b *PooledBuffer) {
	b.Reset()
	pooledBuffers.Put(b)
}

// AcquireChainedBuffer returns an empty ChainedBuffer. Pair every call with
// ReleaseChainedBuffer.
func AcquireChainedBuffer() *ChainedBuffer {
	return chainedBuffers.Get().(*ChainedBuffer)
}

// ReleaseChainedBuffer resets b and returns it, with its segments, to the pools.
func ReleaseChainedBuffer(b *ChainedBuffer) {
	b.Reset()
	chainedBuffers.Put(b)
}

// bytesBufPool backs unmarshalFrom, which has to drain a stream before decoding.
var bytesBufPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, DefaultBufferSize))
	},
}
