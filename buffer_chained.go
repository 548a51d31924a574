package efx

import (
	"fmt"
	"io"
)

type segment struct {
	buf  []byte
	n    int
	next *segment
}

// ChainedBuffer keeps its contents in a list of rented segments. Growing
// appends a segment and never copies committed bytes, which makes it the
// better sink for large outputs of unknown size. The zero value is ready to use.
type ChainedBuffer struct {
	head, tail *segment
	prior      int // committed bytes in every segment before tail
}

var _ Buffer = (*ChainedBuffer)(nil)

func (b *ChainedBuffer) Span(sizeHint int) []byte {
	if sizeHint < 0 {
		panic(fmt.Errorf("%w: negative size hint %d", ErrValidation, sizeHint))
	}
	if sizeHint == 0 {
		sizeHint = 1
	}
	if b.tail == nil || sizeHint > len(b.tail.buf)-b.tail.n {
		seg := &segment{buf: rentBlock(max(sizeHint, DefaultBufferSize))}
		if b.tail == nil {
			b.head = seg
		} else {
			b.prior += b.tail.n
			b.tail.next = seg
		}
		b.tail = seg
	}
	return b.tail.buf[b.tail.n:]
}

func (b *ChainedBuffer) Advance(n int) {
	available := 0
	if b.tail != nil {
		available = len(b.tail.buf) - b.tail.n
	}
	if n < 0 || n > available {
		panic(fmt.Errorf("%w: advance by %d with %d bytes available", ErrAdvanceTooFar, n, available))
	}
	if n > 0 {
		b.tail.n += n
	}
}

// Write implements io.Writer. It never fails.
func (b *ChainedBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	copy(b.Span(len(p)), p)
	b.tail.n += len(p)
	return len(p), nil
}

func (b *ChainedBuffer) Len() int {
	if b.tail == nil {
		return 0
	}
	return b.prior + b.tail.n
}

// Segments returns the number of segments currently rented.
func (b *ChainedBuffer) Segments() int {
	n := 0
	for seg := b.head; seg != nil; seg = seg.next {
		n++
	}
	return n
}

// Bytes flattens the segments into a newly allocated slice.
func (b *ChainedBuffer) Bytes() []byte {
	out := make([]byte, b.Len())
	b.CopyTo(out)
	return out
}

// CopyTo copies the committed bytes into dst and returns the number copied.
func (b *ChainedBuffer) CopyTo(dst []byte) int {
	n := 0
	for seg := b.head; seg != nil && n < len(dst); seg = seg.next {
		n += copy(dst[n:], seg.buf[:seg.n])
	}
	return n
}

// WriteTo implements io.WriterTo, writing segment by segment.
func (b *ChainedBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for seg := b.head; seg != nil; seg = seg.next {
		if seg.n == 0 {
			continue
		}
		n, err := w.Write(seg.buf[:seg.n])
		total += int64(n)
		if err != nil {
			return total, err
		}
		if n < seg.n {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

func (b *ChainedBuffer) Reset() {
	for seg := b.head; seg != nil; {
		next := seg.next
		returnBlock(seg.buf)
		seg.buf, seg.next = nil, nil
		seg = next
	}
	b.head, b.tail, b.prior = nil, nil, 0
}
