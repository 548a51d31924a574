package efx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	oldTarget    = Target{FinalFantasyXII, 10}
	pspTarget    = Target{TacticsOgrePSP, 11}
	rebornTarget = Target{TacticsOgreReborn, 11}
)

func decodeResource(t *testing.T, res Resource, data []byte, tgt Target) {
	t.Helper()
	r := NewReader(data, le)
	require.NoError(t, res.decode(r, tgt))
	assert.Zero(t, r.Remaining(), "resource must consume its own bytes exactly")
}

func TestResourceNames(t *testing.T) {
	assert.Equal(t, "Sound:0#1", ResourceKey{Type: ResourceSound, ID: 1}.String())
	assert.Equal(t, "Unknown50:7#2", ResourceKey{Unknown: 7, Type: ResourceUnknown50, ID: 2}.String())
	assert.Equal(t, "ResourceType(0x99)", ResourceType(0x99).String())
	assert.Equal(t, "ResourceAdd", OpResourceAdd.String())
	assert.Equal(t, "Opcode(0x1234)", Opcode(0x1234).String())

	assert.IsType(t, &UnhandledResource{}, NewResource(ResourceTexture))
	assert.IsType(t, &ModelResource{}, NewResource(ResourceModel))
	assert.IsType(t, &UnhandledCommand{}, NewCommand(OpElementAdd))
	assert.Equal(t, OpElementAdd, NewCommand(OpElementAdd).Opcode())
}

func TestUnknown50Layout(t *testing.T) {
	res := &Unknown50Resource{
		Unknown04:  0x01020304,
		Entries:    []Unknown50Entry{{Unknown60: Color{1, 2, 3, 4}}},
		TextureIDs: []uint8{7, 8},
		ModelIDs:   []uint8{9},
	}

	narrow, err := encodeWith(t, func(w *Writer) error { return res.encode(w, pspTarget) })
	require.NoError(t, err)
	require.Len(t, narrow, 8+112+3)
	assert.Equal(t, []byte{1, 0, 2, 1, 4, 3, 2, 1}, narrow[:8])
	assert.Equal(t, []byte{1, 2, 3, 4}, narrow[8+96:8+100])
	assert.Equal(t, []byte{7, 8, 9}, narrow[len(narrow)-3:])

	got := new(Unknown50Resource)
	decodeResource(t, got, narrow, pspTarget)
	assert.Equal(t, res, got)

	wide := *res
	wide.Entries = []Unknown50Entry{{Unknown70: make([]byte, unknown50WideSize)}}
	data, err := encodeWith(t, func(w *Writer) error { return wide.encode(w, rebornTarget) })
	require.NoError(t, err)
	assert.Len(t, data, 8+128+3)
	got = new(Unknown50Resource)
	decodeResource(t, got, data, rebornTarget)
	assert.Equal(t, &wide, got)
}

func TestUnknown50Validation(t *testing.T) {
	tests := []struct {
		name    string
		res     *Unknown50Resource
		target  Target
		wantErr error
	}{
		{"TextureIDsAtLimit", &Unknown50Resource{TextureIDs: make([]uint8, 255)}, pspTarget, nil},
		{"TextureIDsOverLimit", &Unknown50Resource{TextureIDs: make([]uint8, 256)}, pspTarget, ErrTooManyItems},
		{"ModelIDsAtLimit", &Unknown50Resource{ModelIDs: make([]uint8, 255)}, pspTarget, nil},
		{"ModelIDsOverLimit", &Unknown50Resource{ModelIDs: make([]uint8, 256)}, pspTarget, ErrTooManyItems},
		{"EntriesOverLimit", &Unknown50Resource{Entries: make([]Unknown50Entry, 65536)}, pspTarget, ErrTooManyItems},
		{"MissingWideBlock", &Unknown50Resource{Entries: make([]Unknown50Entry, 1)}, rebornTarget, ErrFieldLength},
		{"UnexpectedWideBlock", &Unknown50Resource{Entries: []Unknown50Entry{{Unknown70: make([]byte, 16)}}}, oldTarget, ErrFieldLength},
		{"ShortWideBlock", &Unknown50Resource{Entries: []Unknown50Entry{{Unknown70: make([]byte, 12)}}}, rebornTarget, ErrFieldLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encodeWith(t, func(w *Writer) error { return tt.res.encode(w, tt.target) })
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUnknown50FullIDLists(t *testing.T) {
	res := &Unknown50Resource{TextureIDs: make([]uint8, 255), ModelIDs: make([]uint8, 255)}
	res.TextureIDs[254], res.ModelIDs[0] = 1, 2

	data, err := encodeWith(t, func(w *Writer) error { return res.encode(w, pspTarget) })
	require.NoError(t, err)
	require.Len(t, data, 8+255+255)
	assert.Equal(t, []byte{0, 0, 255, 255}, data[:4])

	got := new(Unknown50Resource)
	decodeResource(t, got, data, pspTarget)
	assert.Equal(t, res, got)
}

func TestUnknown51Layout(t *testing.T) {
	res := &Unknown51Resource{Entries: []Unknown51Entry{
		{Unknown00: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, Unknown08: 9, Unknown09: 10, Unknown0A: [6]byte{11, 12, 13, 14, 15, 16}},
	}}
	data, err := encodeWith(t, func(w *Writer) error { return res.encode(w, pspTarget) })
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, data)

	got := new(Unknown51Resource)
	decodeResource(t, got, data, pspTarget)
	assert.Equal(t, res, got)

	empty, err := encodeWith(t, func(w *Writer) error { return (&Unknown51Resource{}).encode(w, pspTarget) })
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, empty)
}

func TestModelHeaderPadding(t *testing.T) {
	res := &ModelResource{Flags: 0x80}

	old, err := encodeWith(t, func(w *Writer) error { return res.encode(w, oldTarget) })
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0x80, 0}, make([]byte, 16)...), old)

	v11, err := encodeWith(t, func(w *Writer) error { return res.encode(w, pspTarget) })
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0x80, 0, 0, 0}, make([]byte, 16)...), v11)

	bad := append([]byte(nil), v11...)
	bad[2] = 1
	err = new(ModelResource).decode(NewReader(bad, le), pspTarget)
	var perr *PaddingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Offset)
}

func TestModelLayout(t *testing.T) {
	for _, tgt := range []Target{oldTarget, pspTarget} {
		t.Run(tgt.String(), func(t *testing.T) {
			res := sampleModel()
			data, err := encodeWith(t, func(w *Writer) error { return res.encode(w, tgt) })
			require.NoError(t, err)

			counts := data[modelHeaderPadding(tgt)+1:]
			assert.Equal(t, []byte{1, 0, 1, 0, 4, 0, 0, 0, 1, 0, 2, 0, 1, 0, 1, 0}, counts[:16])
			wantLen := 1 + modelHeaderPadding(tgt) + 16 + // header
				4*16 + 4 + 2*8 + 16 + // vertices, colors, uvs, extras
				2*(3+4+3+4) + // index arrays
				1 + 1 + 1 // face flags, texture ids
			assert.Len(t, data, wantLen)

			got := new(ModelResource)
			decodeResource(t, got, data, tgt)
			assert.Equal(t, res, got)
		})
	}
}

func TestModelWithoutIndices(t *testing.T) {
	res := &ModelResource{TriangleFlags: []uint8{1, 2}, QuadFlags: []uint8{3}}
	data, err := encodeWith(t, func(w *Writer) error { return res.encode(w, pspTarget) })
	require.NoError(t, err)
	assert.Len(t, data, 4+16+3)

	got := new(ModelResource)
	decodeResource(t, got, data, pspTarget)
	assert.Equal(t, res, got)
}

func TestModelValidation(t *testing.T) {
	withIndices := func(mut func(*ModelResource)) *ModelResource {
		res := sampleModel()
		mut(res)
		return res
	}
	tests := []struct {
		name    string
		res     *ModelResource
		wantErr error
	}{
		{"ShortTriangleIndices", withIndices(func(m *ModelResource) { m.TriangleIndices = m.TriangleIndices[:2] }), ErrFieldLength},
		{"LongQuadIndices", withIndices(func(m *ModelResource) { m.QuadIndices = append(m.QuadIndices, 0) }), ErrFieldLength},
		{"SecondaryMismatch", withIndices(func(m *ModelResource) { m.TriangleFlags = append(m.TriangleFlags, 0) }), ErrFieldLength},
		{"IndicesWithoutFlag", withIndices(func(m *ModelResource) { m.Flags = 0 }), ErrFieldLength},
		{"TextureIDsOverLimit", &ModelResource{TextureIDs: make([]uint8, 65536)}, ErrTooManyItems},
		{"TrianglesOverLimit", &ModelResource{TriangleFlags: make([]uint8, 65536)}, ErrTooManyItems},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encodeWith(t, func(w *Writer) error { return tt.res.encode(w, pspTarget) })
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := encodeWith(t, func(w *Writer) error {
		return (&ModelResource{TextureIDs: make([]uint8, 65535)}).encode(w, pspTarget)
	})
	assert.NoError(t, err, "65535 items still fit a u16 count")
}

func TestResourceAddPadding(t *testing.T) {
	cmd := &ResourceAddCommand{
		Key:      ResourceKey{Type: ResourceUnknown51},
		Resource: &Unknown51Resource{},
		Padding:  []byte{0, 0, 0xAB},
	}
	data, err := encodeWith(t, func(w *Writer) error {
		_, err := cmd.encode(w, pspTarget)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0x51, 0, 0, 0, 0, 0, 0xAB}, data)

	got := new(ResourceAddCommand)
	require.NoError(t, got.decode(NewReader(data, le), 99, pspTarget))
	assert.Equal(t, int32(99), got.DataOffset)
	assert.Equal(t, cmd.Padding, got.Padding)
	assert.Equal(t, cmd.Resource, got.Resource)
}
