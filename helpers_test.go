package efx

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var le = binary.LittleEndian

// metaSizes is the scheduler meta data size each game declares.
var metaSizes = map[Game]int32{
	FinalFantasyXII:   160,
	TacticsOgrePSP:    208,
	TacticsOgreReborn: 320,
}

var allTargets = []Target{
	{FinalFantasyXII, 8},
	{FinalFantasyXII, 9},
	{FinalFantasyXII, 10},
	{TacticsOgrePSP, 11},
	{TacticsOgreReborn, 11},
}

// rawChunk frames a payload the way the format does, padding to 16 bytes.
func rawChunk(op Opcode, dataOffset int32, payload []byte) []byte {
	size := Roundup(sizeFieldSize+commandHeaderSize+len(payload), chunkAlignment)
	b := le.AppendUint32(nil, uint32(size))
	b = le.AppendUint16(b, commandVersion)
	b = le.AppendUint16(b, uint16(op))
	b = le.AppendUint32(b, uint32(dataOffset))
	b = append(b, payload...)
	return append(b, make([]byte, size-len(b))...)
}

// metaChunk is a scheduler-meta-add chunk declaring the given data size.
func metaChunk(size int32) []byte {
	return rawChunk(OpSchedulerMetaAdd, size, make([]byte, 4))
}

// rawFile prepends a little-endian header to the chunks.
func rawFile(version uint8, chunks ...[]byte) []byte {
	total := headerSize
	for _, c := range chunks {
		total += len(c)
	}
	b := fmt.Appendf(nil, "EFX%04d", version)
	b = append(b, 0)
	b = le.AppendUint32(b, 0)
	b = le.AppendUint32(b, uint32(total))
	for _, c := range chunks {
		b = append(b, c...)
	}
	return b
}

// newTestFile returns a file for t whose first command lets the target be detected.
func newTestFile(t Target, cmds ...Command) *EffectFile {
	meta := &UnhandledCommand{Op: OpSchedulerMetaAdd, DataOffset: metaSizes[t.Game], Data: make([]byte, 4)}
	return &EffectFile{Target: t, Unknown: 1.5, Commands: append([]Command{meta}, cmds...)}
}

// roundTrip builds f, parses the result and checks that building the parsed
// file reproduces the same bytes.
func roundTrip(t *testing.T, f *EffectFile, opts ...ReadOption) (*EffectFile, []byte) {
	t.Helper()
	data, err := Build(f)
	require.NoError(t, err)
	parsed, err := Parse(data, append([]ReadOption{WithEndian(f.Endian)}, opts...)...)
	require.NoError(t, err)
	again, err := Build(parsed)
	require.NoError(t, err)
	require.Equal(t, data, again)
	return parsed, data
}

// encodeWith runs an encode function against a fresh little-endian writer.
func encodeWith(t *testing.T, encode func(w *Writer) error) ([]byte, error) {
	t.Helper()
	buf := &PooledBuffer{}
	t.Cleanup(buf.Reset)
	w := NewWriter(buf, le)
	if err := encode(w); err != nil {
		return nil, err
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.Bytes()...), nil
}
