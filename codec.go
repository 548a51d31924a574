package efx

import (
	"bytes"
	"encoding"
	"io"
)

// Marshaler is the encoding half of Codec.
type Marshaler interface {
	encoding.BinaryMarshaler
	// WriteTo streams the encoded form without building one contiguous slice.
	io.WriterTo
}

// Unmarshaler is the decoding half of Codec.
type Unmarshaler interface {
	encoding.BinaryUnmarshaler
	io.ReaderFrom
}

// Codec is satisfied by values that round-trip through the standard binary
// and stream interfaces.
type Codec interface {
	Marshaler
	Unmarshaler
}

// unmarshalFrom drains r and hands the bytes to v.UnmarshalBinary.
// Chunk framing and target detection need the whole file, so nothing is
// decoded before EOF.
func unmarshalFrom[T encoding.BinaryUnmarshaler](v T, r io.Reader) (int64, error) {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	n, err := buf.ReadFrom(r)
	if err != nil {
		return n, err
	}
	return n, v.UnmarshalBinary(buf.Bytes())
}
