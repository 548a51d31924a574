package efx

import (
	"fmt"
	"io"
)

// Buffer is an append-only byte sink backed by pooled memory.
//
// Callers obtain writable space with Span, fill a prefix of it and commit that
// prefix with Advance. The slice returned by Span is only valid until the next
// call to Span, Write or Reset.
type Buffer interface {
	io.Writer
	io.WriterTo

	// Span returns at least sizeHint writable bytes. A hint of zero asks for
	// any non-empty region.
	Span(sizeHint int) []byte
	// Advance commits n bytes of the last span. It panics with an error
	// wrapping ErrAdvanceTooFar when n exceeds that span.
	Advance(n int)
	// Len returns the number of committed bytes.
	Len() int
	// Bytes returns the committed bytes.
	Bytes() []byte
	// Reset drops the contents and returns the storage to the pool.
	Reset()
}

// PooledBuffer keeps its contents in a single rented block. Growing rents a
// larger block, copies the committed bytes and returns the old block.
// The zero value is ready to use.
type PooledBuffer struct {
	buf []byte
	n   int
}

var _ Buffer = (*PooledBuffer)(nil)

func (b *PooledBuffer) Span(sizeHint int) []byte {
	b.grow(sizeHint)
	return b.buf[b.n:]
}

func (b *PooledBuffer) grow(sizeHint int) {
	if sizeHint < 0 {
		panic(fmt.Errorf("%w: negative size hint %d", ErrValidation, sizeHint))
	}
	if sizeHint == 0 {
		sizeHint = 1
	}
	if sizeHint <= len(b.buf)-b.n {
		return
	}
	size := max(len(b.buf)+max(sizeHint, len(b.buf)), DefaultBufferSize)
	next := rentBlock(size)
	copy(next, b.buf[:b.n])
	if b.buf != nil {
		returnBlock(b.buf)
	}
	b.buf = next
}

func (b *PooledBuffer) Advance(n int) {
	if n < 0 || n > len(b.buf)-b.n {
		panic(fmt.Errorf("%w: advance by %d with %d bytes available", ErrAdvanceTooFar, n, len(b.buf)-b.n))
	}
	b.n += n
}

// Write implements io.Writer. It never fails.
func (b *PooledBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	copy(b.Span(len(p)), p)
	b.n += len(p)
	return len(p), nil
}

// WriteTo implements io.WriterTo.
func (b *PooledBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf[:b.n])
	if err == nil && n < b.n {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

func (b *PooledBuffer) Len() int { return b.n }

// Cap returns the size of the current block.
func (b *PooledBuffer) Cap() int { return len(b.buf) }

// Bytes returns a view of the committed bytes. It is invalidated by the next
// growth or Reset.
func (b *PooledBuffer) Bytes() []byte { return b.buf[:b.n] }

func (b *PooledBuffer) Reset() {
	if b.buf != nil {
		returnBlock(b.buf)
	}
	b.buf, b.n = nil, 0
}
