package efx

import "math"

// ModelHasIndices is the Flags bit that enables the four index arrays.
const ModelHasIndices = 0x01

// ModelExtra is a 16-byte model record whose layout is not known.
type ModelExtra struct {
	Data [16]byte
}

// ModelResource is a small mesh: vertex data plus triangle and quad faces.
//
// The triangle count is len(TriangleFlags) and the quad count is
// len(QuadFlags). When Flags has ModelHasIndices set, each index array holds
// three shorts per triangle or four per quad; otherwise all four are empty.
type ModelResource struct {
	Flags      uint8
	Vertices   []Vector4
	Vectors    []Vector4
	Colors     []Color
	UVs        []UV
	Extras     []ModelExtra
	TextureIDs []uint8

	TriangleIndices  []int16
	QuadIndices      []int16
	TriangleIndices2 []int16
	QuadIndices2     []int16

	TriangleFlags []uint8
	QuadFlags     []uint8
}

func (res *ModelResource) Type() ResourceType { return ResourceModel }

func modelHeaderPadding(t Target) int {
	if t.Version < 11 {
		return 1
	}
	return 3
}

func (res *ModelResource) decode(r *Reader, t Target) error {
	res.Flags = r.ReadUint8()
	r.SkipPadding(modelHeaderPadding(t))
	triangles := int(r.ReadUint16())
	quads := int(r.ReadUint16())
	vertexCount := int(r.ReadUint16())
	vectorCount := int(r.ReadUint16())
	colorCount := int(r.ReadUint16())
	uvCount := int(r.ReadUint16())
	textureCount := int(r.ReadUint16())
	extraCount := int(r.ReadUint16())

	res.Vertices = readList(r, vertexCount, readVector4)
	res.Vectors = readList(r, vectorCount, readVector4)
	res.Colors = readFixedList[Color](r, colorCount)
	res.UVs = readList(r, uvCount, readUV)
	res.Extras = readFixedList[ModelExtra](r, extraCount)
	if res.Flags&ModelHasIndices != 0 {
		res.TriangleIndices = readInt16List(r, triangles*3)
		res.QuadIndices = readInt16List(r, quads*4)
		res.TriangleIndices2 = readInt16List(r, triangles*3)
		res.QuadIndices2 = readInt16List(r, quads*4)
	}
	res.TriangleFlags = r.ReadBytes(triangles)
	res.QuadFlags = r.ReadBytes(quads)
	res.TextureIDs = r.ReadBytes(textureCount)
	return r.Err()
}

func (res *ModelResource) validate() error {
	counts := []struct {
		field string
		n     int
	}{
		{"triangles", len(res.TriangleFlags)},
		{"quads", len(res.QuadFlags)},
		{"vertices", len(res.Vertices)},
		{"vectors", len(res.Vectors)},
		{"colors", len(res.Colors)},
		{"uvs", len(res.UVs)},
		{"texture ids", len(res.TextureIDs)},
		{"extras", len(res.Extras)},
	}
	for _, c := range counts {
		if err := checkCount(c.field, c.n, math.MaxUint16); err != nil {
			return err
		}
	}

	triangles, quads := len(res.TriangleFlags), len(res.QuadFlags)
	if res.Flags&ModelHasIndices == 0 {
		triangles, quads = 0, 0
	}
	lengths := []struct {
		field     string
		got, want int
	}{
		{"triangle indices", len(res.TriangleIndices), triangles * 3},
		{"quad indices", len(res.QuadIndices), quads * 4},
		{"secondary triangle indices", len(res.TriangleIndices2), triangles * 3},
		{"secondary quad indices", len(res.QuadIndices2), quads * 4},
	}
	for _, l := range lengths {
		if err := checkLength(l.field, l.got, l.want); err != nil {
			return err
		}
	}
	return nil
}

func (res *ModelResource) encode(w *Writer, t Target) error {
	if err := res.validate(); err != nil {
		return err
	}
	w.WriteUint8(res.Flags)
	w.WriteZeros(modelHeaderPadding(t))
	w.WriteUint16(uint16(len(res.TriangleFlags)))
	w.WriteUint16(uint16(len(res.QuadFlags)))
	w.WriteUint16(uint16(len(res.Vertices)))
	w.WriteUint16(uint16(len(res.Vectors)))
	w.WriteUint16(uint16(len(res.Colors)))
	w.WriteUint16(uint16(len(res.UVs)))
	w.WriteUint16(uint16(len(res.TextureIDs)))
	w.WriteUint16(uint16(len(res.Extras)))

	writeList(w, res.Vertices, writeVector4)
	writeList(w, res.Vectors, writeVector4)
	writeFixedList(w, res.Colors)
	writeList(w, res.UVs, writeUV)
	writeFixedList(w, res.Extras)
	if res.Flags&ModelHasIndices != 0 {
		writeInt16List(w, res.TriangleIndices)
		writeInt16List(w, res.QuadIndices)
		writeInt16List(w, res.TriangleIndices2)
		writeInt16List(w, res.QuadIndices2)
	}
	w.WriteBytes(res.TriangleFlags)
	w.WriteBytes(res.QuadFlags)
	w.WriteBytes(res.TextureIDs)
	return w.Err()
}
