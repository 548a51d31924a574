package efx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Endian selects the byte order of every multi-byte field in a file.
type Endian uint8

const (
	LittleEndian Endian = iota
	BigEndian
)

// Order returns the binary.ByteOrder for e.
func (e Endian) Order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (e Endian) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// EffectFile is a decoded effect container: a 16-byte header followed by an
// ordered list of commands.
type EffectFile struct {
	Endian Endian
	Target Target
	// Unknown is the float stored after the magic.
	Unknown  float32
	Commands []Command
}

var _ Codec = (*EffectFile)(nil)

// Parse decodes an effect file. The target is detected from the chunk stream
// unless WithTarget is given.
func Parse(data []byte, opts ...ReadOption) (*EffectFile, error) {
	cfg := newReadConfig(opts)
	r := NewReader(data, cfg.endian.Order())

	magic := r.ReadString(magicSize)
	unknown := r.ReadFloat32()
	totalSize := r.ReadInt32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	version, ok := versionFromMagic(magic)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, magic)
	}
	if int64(totalSize) != int64(len(data)) {
		return nil, fmt.Errorf("%w: header says %d bytes, have %d", ErrTotalSize, totalSize, len(data))
	}

	body := r.Sub(r.Remaining())
	var target Target
	switch {
	case cfg.target != nil:
		target = *cfg.target
		if target.Version != version {
			return nil, fmt.Errorf("%w: %s forced on a version %d file", ErrUnknownTarget, target, version)
		}
		if err := target.Validate(); err != nil {
			return nil, err
		}
	case cfg.game != GameUnknown:
		target = Target{Game: cfg.game, Version: version}
		if err := target.Validate(); err != nil {
			return nil, err
		}
	default:
		scan := *body
		t, err := detectTarget(&scan, version)
		if err != nil {
			return nil, err
		}
		target = t
		cfg.logger.Debug("detected target", "target", target)
	}

	f := &EffectFile{Endian: cfg.endian, Target: target, Unknown: unknown}
	err := walkChunks(body, func(i int, chunk *Reader) error {
		offset := chunk.Offset() - sizeFieldSize
		cmd, err := readCommand(chunk, target)
		if err != nil {
			return fmt.Errorf("chunk %d at offset %d: %w", i, offset, err)
		}
		if cfg.logger.IsTrace() {
			cfg.logger.Trace("read chunk", "index", i, "offset", offset, "size", chunk.Len()+sizeFieldSize, "opcode", cmd.Opcode())
		}
		f.Commands = append(f.Commands, cmd)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Build encodes f into a new byte slice.
func Build(f *EffectFile, opts ...WriteOption) ([]byte, error) {
	out := AcquirePooledBuffer()
	defer ReleasePooledBuffer(out)
	if err := f.Encode(out, opts...); err != nil {
		return nil, err
	}
	return bytes.Clone(out.Bytes()), nil
}

// Encode appends the encoded form of f to buf.
func (f *EffectFile) Encode(buf Buffer, opts ...WriteOption) error {
	cfg := newWriteConfig(opts)
	if err := f.Target.Validate(); err != nil {
		return err
	}
	magic, err := magicForVersion(f.Target.Version)
	if err != nil {
		return err
	}
	order := f.Endian.Order()

	body := AcquireChainedBuffer()
	defer ReleaseChainedBuffer(body)
	bw := NewWriter(body, order)
	for i, cmd := range f.Commands {
		offset := headerSize + body.Len()
		size, err := writeChunk(bw, cmd, f.Target)
		if err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
		if cfg.logger.IsTrace() {
			cfg.logger.Trace("wrote chunk", "index", i, "offset", offset, "size", size, "opcode", cmd.Opcode())
		}
	}

	total := headerSize + body.Len()
	if total > math.MaxInt32 {
		return fmt.Errorf("%w: file of %d bytes", ErrTooManyItems, total)
	}
	w := NewWriter(buf, order)
	w.WriteString(magic, magicSize)
	w.WriteFloat32(f.Unknown)
	w.WriteInt32(int32(total))
	if err := w.Err(); err != nil {
		return err
	}
	_, err = body.WriteTo(buf)
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (f *EffectFile) MarshalBinary() ([]byte, error) { return Build(f) }

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The byte order is
// taken from f.Endian.
func (f *EffectFile) UnmarshalBinary(data []byte) error {
	parsed, err := Parse(data, WithEndian(f.Endian))
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// ReadFrom implements io.ReaderFrom. It drains r before decoding.
func (f *EffectFile) ReadFrom(r io.Reader) (int64, error) { return unmarshalFrom(f, r) }

// WriteTo implements io.WriterTo. The file is encoded into pooled segments
// which are then written to w in order.
func (f *EffectFile) WriteTo(w io.Writer) (int64, error) {
	buf := AcquireChainedBuffer()
	defer ReleaseChainedBuffer(buf)
	if err := f.Encode(buf); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}
