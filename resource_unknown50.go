package efx

import (
	"fmt"
	"math"
)

const unknown50WideSize = 16

// Unknown50Entry is one record of an Unknown50Resource.
type Unknown50Entry struct {
	Unknown00 Vector4
	Unknown10 Vector4
	Unknown20 Vector4
	Unknown30 Vector4
	Unknown40 Vector4
	Unknown50 Vector4
	Unknown60 Color
	Unknown64 [12]byte
	// Unknown70 is 16 bytes on TacticsOgreReborn and nil everywhere else.
	Unknown70 []byte
}

// Unknown50Resource is a list of entries followed by the texture and model
// resource ids they reference.
type Unknown50Resource struct {
	Unknown04  int32
	Entries    []Unknown50Entry
	TextureIDs []uint8
	ModelIDs   []uint8
}

func (res *Unknown50Resource) Type() ResourceType { return ResourceUnknown50 }

func (res *Unknown50Resource) decode(r *Reader, t Target) error {
	entryCount := int(r.ReadUint16())
	textureCount := int(r.ReadUint8())
	modelCount := int(r.ReadUint8())
	res.Unknown04 = r.ReadInt32()
	res.Entries = readList(r, entryCount, func(r *Reader) Unknown50Entry {
		return readUnknown50Entry(r, t)
	})
	res.TextureIDs = r.ReadBytes(textureCount)
	res.ModelIDs = r.ReadBytes(modelCount)
	return r.Err()
}

func (res *Unknown50Resource) encode(w *Writer, t Target) error {
	if err := checkCount("entries", len(res.Entries), math.MaxUint16); err != nil {
		return err
	}
	if err := checkCount("texture ids", len(res.TextureIDs), math.MaxUint8); err != nil {
		return err
	}
	if err := checkCount("model ids", len(res.ModelIDs), math.MaxUint8); err != nil {
		return err
	}
	wantWide := 0
	if t.Wide() {
		wantWide = unknown50WideSize
	}
	for i := range res.Entries {
		if err := checkLength(fmt.Sprintf("entry %d unknown70", i), len(res.Entries[i].Unknown70), wantWide); err != nil {
			return err
		}
	}

	w.WriteUint16(uint16(len(res.Entries)))
	w.WriteUint8(uint8(len(res.TextureIDs)))
	w.WriteUint8(uint8(len(res.ModelIDs)))
	w.WriteInt32(res.Unknown04)
	writeList(w, res.Entries, func(w *Writer, e Unknown50Entry) {
		e.write(w)
	})
	w.WriteBytes(res.TextureIDs)
	w.WriteBytes(res.ModelIDs)
	return w.Err()
}

func readUnknown50Entry(r *Reader, t Target) Unknown50Entry {
	var e Unknown50Entry
	e.Unknown00 = readVector4(r)
	e.Unknown10 = readVector4(r)
	e.Unknown20 = readVector4(r)
	e.Unknown30 = readVector4(r)
	e.Unknown40 = readVector4(r)
	e.Unknown50 = readVector4(r)
	e.Unknown60 = ReadFixed[Color](r)
	e.Unknown64 = ReadFixed[[12]byte](r)
	if t.Wide() {
		e.Unknown70 = r.ReadBytes(unknown50WideSize)
	}
	return e
}

func (e *Unknown50Entry) write(w *Writer) {
	writeVector4(w, e.Unknown00)
	writeVector4(w, e.Unknown10)
	writeVector4(w, e.Unknown20)
	writeVector4(w, e.Unknown30)
	writeVector4(w, e.Unknown40)
	writeVector4(w, e.Unknown50)
	WriteFixed(w, e.Unknown60)
	WriteFixed(w, e.Unknown64)
	w.WriteBytes(e.Unknown70)
}
