package efx

import "math"

// Unknown51Entry is a 16-byte record of an Unknown51Resource.
type Unknown51Entry struct {
	Unknown00 [8]byte
	Unknown08 uint8
	Unknown09 uint8
	Unknown0A [6]byte
}

// Unknown51Resource is a counted list of Unknown51Entry.
type Unknown51Resource struct {
	Entries []Unknown51Entry
}

func (res *Unknown51Resource) Type() ResourceType { return ResourceUnknown51 }

func (res *Unknown51Resource) decode(r *Reader, _ Target) error {
	count := int(r.ReadUint16())
	res.Entries = readFixedList[Unknown51Entry](r, count)
	return r.Err()
}

func (res *Unknown51Resource) encode(w *Writer, _ Target) error {
	if err := checkCount("entries", len(res.Entries), math.MaxUint16); err != nil {
		return err
	}
	w.WriteUint16(uint16(len(res.Entries)))
	writeFixedList(w, res.Entries)
	return w.Err()
}
