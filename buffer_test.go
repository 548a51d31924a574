package efx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recoverError runs fn and returns the error it panicked with.
func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func pattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*7 + 1)
	}
	return p
}

func TestPooledBufferGrowth(t *testing.T) {
	b := &PooledBuffer{}
	defer b.Reset()

	span := b.Span(0)
	require.NotEmpty(t, span)
	assert.GreaterOrEqual(t, b.Cap(), DefaultBufferSize)

	head := pattern(100)
	_, _ = b.Write(head)
	first := b.Cap()

	span = b.Span(first)
	assert.GreaterOrEqual(t, len(span), first)
	assert.GreaterOrEqual(t, b.Cap(), first+first, "growth adds at least the current size")
	assert.Equal(t, head, b.Bytes(), "growth keeps committed bytes")

	copy(span, []byte{1, 2, 3})
	b.Advance(3)
	assert.Equal(t, 103, b.Len())
	assert.Equal(t, []byte{1, 2, 3}, b.Bytes()[100:])
}

func TestPooledBufferAdvancePastSpanPanics(t *testing.T) {
	b := &PooledBuffer{}
	defer b.Reset()
	span := b.Span(16)

	err := recoverError(func() { b.Advance(len(span) + 1) })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAdvanceTooFar)
	assert.ErrorIs(t, err, ErrValidation)

	err = recoverError(func() { b.Advance(-1) })
	assert.ErrorIs(t, err, ErrAdvanceTooFar)
	assert.Zero(t, b.Len())
}

func TestPooledBufferReset(t *testing.T) {
	b := AcquirePooledBuffer()
	_, _ = b.Write(pattern(10))
	b.Reset()
	assert.Zero(t, b.Len())
	assert.Zero(t, b.Cap())
	assert.Empty(t, b.Bytes())
	ReleasePooledBuffer(b)
}

func TestChainedBufferSegments(t *testing.T) {
	b := AcquireChainedBuffer()
	defer ReleaseChainedBuffer(b)

	assert.Zero(t, b.Len())
	assert.Empty(t, b.Bytes())

	data := pattern(3*DefaultBufferSize + 123)
	for off := 0; off < len(data); off += 1000 {
		end := min(off+1000, len(data))
		_, _ = b.Write(data[off:end])
	}
	assert.Equal(t, len(data), b.Len())
	assert.Greater(t, b.Segments(), 1)
	assert.Equal(t, data, b.Bytes())

	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	require.NoError(t, err)
	assert.EqualValues(t, len(data), n)
	assert.Equal(t, data, out.Bytes())

	dst := make([]byte, 10)
	assert.Equal(t, 10, b.CopyTo(dst))
	assert.Equal(t, data[:10], dst)
}

func TestChainedBufferLargeSpan(t *testing.T) {
	b := &ChainedBuffer{}
	defer b.Reset()

	_, _ = b.Write([]byte{1})
	span := b.Span(4 * DefaultBufferSize)
	require.GreaterOrEqual(t, len(span), 4*DefaultBufferSize)
	clear(span[:4*DefaultBufferSize])
	b.Advance(4 * DefaultBufferSize)

	assert.Equal(t, 1+4*DefaultBufferSize, b.Len())
	assert.Equal(t, 2, b.Segments())
	assert.Equal(t, byte(1), b.Bytes()[0])
}

func TestChainedBufferAdvancePanics(t *testing.T) {
	b := &ChainedBuffer{}
	defer b.Reset()

	err := recoverError(func() { b.Advance(1) })
	assert.True(t, errors.Is(err, ErrAdvanceTooFar), "advance before any span")

	span := b.Span(1)
	err = recoverError(func() { b.Advance(len(span) + 1) })
	assert.ErrorIs(t, err, ErrAdvanceTooFar)
	assert.NoError(t, recoverError(func() { b.Advance(0) }))
}

func TestChainedBufferReset(t *testing.T) {
	b := &ChainedBuffer{}
	_, _ = b.Write(pattern(2 * DefaultBufferSize))
	b.Reset()
	assert.Zero(t, b.Len())
	assert.Zero(t, b.Segments())

	_, _ = b.Write([]byte{9})
	assert.Equal(t, []byte{9}, b.Bytes())
	b.Reset()
}

func TestBlockPoolClasses(t *testing.T) {
	assert.Equal(t, 0, blockClass(1))
	assert.Equal(t, 0, blockClass(4096))
	assert.Equal(t, 1, blockClass(4097))
	assert.Equal(t, 1, blockClass(8192))

	block := rentBlock(5000)
	assert.Len(t, block, 8192)
	returnBlock(block)
	assert.Equal(t, len(blockPools), blockClass(1<<maxBlockShift+1), "oversized blocks bypass the pools")
}
