package efx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer encodes primitives into a Buffer with a fixed byte order.
// It tracks the first error that occurs; after an error, all subsequent
// write operations become no-ops.
type Writer struct {
	buf   Buffer
	order binary.ByteOrder
	err   error
}

// NewWriter returns a Writer appending to buf.
func NewWriter(buf Buffer, order binary.ByteOrder) *Writer {
	return &Writer{buf: buf, order: order}
}

func (w *Writer) Order() binary.ByteOrder { return w.order }
func (w *Writer) Len() int                { return w.buf.Len() }
func (w *Writer) Err() error              { return w.err }

// setError records the first non-nil error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// reserve returns exactly n writable bytes; commit them with w.buf.Advance(n).
func (w *Writer) reserve(n int) []byte {
	return w.buf.Span(n)[:n]
}

// WriteBytes writes p verbatim.
func (w *Writer) WriteBytes(p []byte) {
	if len(p) == 0 || w.err != nil {
		return
	}
	_, err := w.buf.Write(p)
	w.setError(err)
}

// WriteZeros writes n zero bytes. It is the writing side of Reader.SkipPadding.
func (w *Writer) WriteZeros(n int) {
	if n <= 0 || w.err != nil {
		return
	}
	clear(w.reserve(n))
	w.buf.Advance(n)
}

// Align writes zero bytes until the length is a multiple of n.
func (w *Writer) Align(n int) {
	if n > 1 {
		w.WriteZeros(Roundup(w.buf.Len(), n) - w.buf.Len())
	}
}

// WriteString writes s as a fixed-size NUL-padded ASCII field of n bytes.
func (w *Writer) WriteString(s string, n int) {
	if w.err != nil {
		return
	}
	if len(s) > n {
		w.setError(fmt.Errorf("%w: string %q is longer than %d bytes", ErrFieldLength, s, n))
		return
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 || s[i] > 0x7f {
			w.setError(fmt.Errorf("%w: string %q is not plain ASCII", ErrFieldValue, s))
			return
		}
	}
	p := w.reserve(n)
	clear(p[copy(p, s):])
	w.buf.Advance(n)
}

// --- Primitive Write Operations ---

func (w *Writer) WriteUint8(v uint8) {
	if w.err != nil {
		return
	}
	w.reserve(1)[0] = v
	w.buf.Advance(1)
}

func (w *Writer) WriteUint16(v uint16) {
	if w.err != nil {
		return
	}
	w.order.PutUint16(w.reserve(2), v)
	w.buf.Advance(2)
}

func (w *Writer) WriteUint32(v uint32) {
	if w.err != nil {
		return
	}
	w.order.PutUint32(w.reserve(4), v)
	w.buf.Advance(4)
}

func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }
