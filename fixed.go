package efx

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the cost of reflection in `binary.Size` on every record.
// Records are decoded from many goroutines, so the cache is a concurrent map.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// FixedSize returns the encoded size of the fixed-layout record type T.
//
// Constraint: T MUST NOT contain slices, maps or strings, and every field
// must be exported, as `encoding/binary` requires. Records with float fields
// have their own readers, see readVector4.
func FixedSize[T any]() int {
	t := reflect.TypeFor[T]()
	if size, ok := sizeCache.Load(t); ok {
		return size
	}
	var zero T
	size := binary.Size(&zero)
	sizeCache.Store(t, size)
	return size
}

// ReadFixed decodes one fixed-layout record in the reader's byte order.
func ReadFixed[T any](r *Reader) T {
	var v T
	size := FixedSize[T]()
	if size < 0 {
		r.setError(fmt.Errorf("efx: %s is not a fixed-size record", reflect.TypeFor[T]()))
		return v
	}
	p := r.next(size)
	if p == nil {
		return v
	}
	if _, err := binary.Decode(p, r.order, &v); err != nil {
		r.setError(fmt.Errorf("%w: %v", ErrTruncatedData, err))
	}
	return v
}

// WriteFixed encodes one fixed-layout record in the writer's byte order.
func WriteFixed[T any](w *Writer, v T) {
	if w.err != nil {
		return
	}
	size := FixedSize[T]()
	if size < 0 {
		w.setError(fmt.Errorf("efx: %s is not a fixed-size record", reflect.TypeFor[T]()))
		return
	}
	if _, err := binary.Encode(w.reserve(size), w.order, &v); err != nil {
		w.setError(err)
		return
	}
	w.buf.Advance(size)
}
