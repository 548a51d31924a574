package efx

import (
	"fmt"
	"math"
)

const (
	headerSize        = 16
	magicSize         = 8
	sizeFieldSize     = 4
	commandHeaderSize = 8
	minChunkSize      = 8
	chunkAlignment    = 16
	commandVersion    = 0x100
)

// walkChunks splits the rest of r into size-prefixed chunks and calls fn
// with a reader over each chunk, size field excluded. The chunk reader covers
// the whole declared size, trailing padding included.
func walkChunks(r *Reader, fn func(index int, chunk *Reader) error) error {
	for i := 0; r.Remaining() > 0; i++ {
		start := r.Offset()
		size := r.ReadInt32()
		if err := r.Err(); err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}
		if size < minChunkSize || int(size)-sizeFieldSize > r.Remaining() {
			return fmt.Errorf("%w: chunk %d at offset %d declares %d bytes, %d left",
				ErrChunkSize, i, start, size, r.Remaining()+sizeFieldSize)
		}
		if err := fn(i, r.Sub(int(size)-sizeFieldSize)); err != nil {
			return err
		}
	}
	return r.Err()
}

type commandHeader struct {
	offset     int
	opcode     Opcode
	dataOffset int32
}

func readCommandHeader(r *Reader) (commandHeader, error) {
	hdr := commandHeader{offset: r.Offset()}
	version := r.ReadUint16()
	hdr.opcode = Opcode(r.ReadUint16())
	hdr.dataOffset = r.ReadInt32()
	if err := r.Err(); err != nil {
		return hdr, err
	}
	if version != commandVersion {
		return hdr, fmt.Errorf("%w: 0x%04X at offset %d", ErrCommandVersion, version, hdr.offset)
	}
	// Opcode 0 cannot be written back, so it is refused here as well.
	if hdr.opcode == OpInvalid {
		return hdr, fmt.Errorf("%w: opcode %s at offset %d", ErrInvalidValue, hdr.opcode, hdr.offset)
	}
	return hdr, nil
}

// readCommand decodes one chunk into its command.
func readCommand(chunk *Reader, t Target) (Command, error) {
	hdr, err := readCommandHeader(chunk)
	if err != nil {
		return nil, err
	}
	cmd := NewCommand(hdr.opcode)
	if err := cmd.decode(chunk, hdr.dataOffset, t); err != nil {
		return nil, fmt.Errorf("%s at offset %d: %w", hdr.opcode, hdr.offset, err)
	}
	return cmd, nil
}

// writeChunk encodes cmd into a scratch buffer, then frames it into w as
// [size][0x100][opcode][data offset][payload] padded to 16 bytes.
func writeChunk(w *Writer, cmd Command, t Target) (int, error) {
	if cmd == nil {
		return 0, fmt.Errorf("%w: nil command", ErrMissingField)
	}
	op := cmd.Opcode()
	if op == OpInvalid {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOpcode, op)
	}

	scratch := AcquirePooledBuffer()
	defer ReleasePooledBuffer(scratch)
	sw := NewWriter(scratch, w.Order())
	dataOffset, err := cmd.encode(sw, t)
	if err == nil {
		err = sw.Err()
	}
	if err != nil {
		return 0, err
	}

	size := sizeFieldSize + commandHeaderSize + scratch.Len()
	padded := Roundup(size, chunkAlignment)
	if padded > math.MaxInt32 {
		return 0, fmt.Errorf("%w: chunk of %d bytes", ErrTooManyItems, padded)
	}
	w.WriteInt32(int32(padded))
	w.WriteUint16(commandVersion)
	w.WriteUint16(uint16(op))
	w.WriteInt32(dataOffset)
	w.WriteBytes(scratch.Bytes())
	w.WriteZeros(padded - size)
	return padded, w.Err()
}
