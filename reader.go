package efx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader is a cursor over a borrowed byte slice.
//
// Every read advances the position. The first failure is latched and later
// reads become no-ops returning zero values, so a decoder can read a whole
// structure and check Err once.
type Reader struct {
	b     []byte
	pos   int
	base  int // absolute offset of b[0], used in error messages
	order binary.ByteOrder
	err   error
}

// NewReader returns a Reader over b using the given byte order.
func NewReader(b []byte, order binary.ByteOrder) *Reader {
	return &Reader{b: b, order: order}
}

func (r *Reader) Order() binary.ByteOrder { return r.order }
func (r *Reader) Err() error              { return r.err }

// Pos returns the position relative to the start of this reader.
func (r *Reader) Pos() int { return r.pos }

// Offset returns the absolute position within the outermost reader.
func (r *Reader) Offset() int { return r.base + r.pos }

// Len returns the total size of the reader, consumed bytes included.
func (r *Reader) Len() int { return len(r.b) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.err != nil {
		return 0
	}
	return len(r.b) - r.pos
}

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// next returns a view of the next n bytes and advances past them.
func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.b)-r.pos {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedData, n, r.Offset(), len(r.b)-r.pos)
		return nil
	}
	p := r.b[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return p
}

// Sub carves the next n bytes into an independent Reader that reports
// offsets relative to the same origin.
func (r *Reader) Sub(n int) *Reader {
	start := r.Offset()
	p := r.next(n)
	return &Reader{b: p, base: start, order: r.order, err: r.err}
}

// Skip advances n bytes without looking at them.
func (r *Reader) Skip(n int) { r.next(n) }

// SkipPadding advances n bytes that must all be zero.
func (r *Reader) SkipPadding(n int) {
	start := r.Offset()
	p := r.next(n)
	if p != nil {
		r.setError(CheckZeros(p, start))
	}
}

// ReadBytes returns a copy of the next n bytes. It returns nil for n == 0.
func (r *Reader) ReadBytes(n int) []byte {
	p := r.next(n)
	if len(p) == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, p)
	return out
}

// ReadRest returns a copy of every unread byte, or nil when none are left.
func (r *Reader) ReadRest() []byte {
	return r.ReadBytes(r.Remaining())
}

// ReadString reads a fixed-size NUL-terminated ASCII field of n bytes.
// The bytes after the terminator must be zero.
func (r *Reader) ReadString(n int) string {
	start := r.Offset()
	p := r.next(n)
	if p == nil {
		return ""
	}
	end := n
	for i, c := range p {
		if c == 0 {
			end = i
			break
		}
	}
	r.setError(CheckZeros(p[end:], start+end))
	return string(p[:end])
}

// --- Primitive Read Operations ---

func (r *Reader) ReadUint8() uint8 {
	if p := r.next(1); p != nil {
		return p[0]
	}
	return 0
}

func (r *Reader) ReadUint16() uint16 {
	if p := r.next(2); p != nil {
		return r.order.Uint16(p)
	}
	return 0
}

func (r *Reader) ReadUint32() uint32 {
	if p := r.next(4); p != nil {
		return r.order.Uint32(p)
	}
	return 0
}

func (r *Reader) ReadInt16() int16 { return int16(r.ReadUint16()) }
func (r *Reader) ReadInt32() int32 { return int32(r.ReadUint32()) }

func (r *Reader) ReadFloat32() float32 { return math.Float32frombits(r.ReadUint32()) }
