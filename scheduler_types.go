package efx

import (
	"fmt"
	"math"
)

// Unknown0Scheduler has no fields beyond the common prefix.
type Unknown0Scheduler struct {
	SchedulerBase
}

func (s *Unknown0Scheduler) Type() SchedulerType { return SchedulerUnknown0 }

func (s *Unknown0Scheduler) decode(r *Reader, _ Target) error {
	return s.decodeBase(r, SchedulerUnknown0)
}

func (s *Unknown0Scheduler) encode(w *Writer, _ Target) error {
	return s.encodeBase(w, SchedulerUnknown0)
}

// Unknown1Scheduler spawns a generator and element pair.
type Unknown1Scheduler struct {
	SchedulerBase
	GeneratorID uint16
	ElementID   uint16
	Unknown14   uint8
}

func (s *Unknown1Scheduler) Type() SchedulerType { return SchedulerUnknown1 }

func (s *Unknown1Scheduler) decode(r *Reader, _ Target) error {
	if err := s.decodeBase(r, SchedulerUnknown1); err != nil {
		return err
	}
	s.GeneratorID = r.ReadUint16()
	s.ElementID = r.ReadUint16()
	s.Unknown14 = r.ReadUint8()
	r.SkipPadding(11)
	return r.Err()
}

func (s *Unknown1Scheduler) encode(w *Writer, _ Target) error {
	if err := s.encodeBase(w, SchedulerUnknown1); err != nil {
		return err
	}
	w.WriteUint16(s.GeneratorID)
	w.WriteUint16(s.ElementID)
	w.WriteUint8(s.Unknown14)
	w.WriteZeros(11)
	return w.Err()
}

// Unknown2Entry is one timed entry of an Unknown2Scheduler.
type Unknown2Entry struct {
	Type          uint8
	TimelineStart uint16
	// Payload is 12 bytes before version 11 and 16 bytes from version 11 on.
	Payload []byte
}

// Unknown2Scheduler holds a fixed-capacity table of entries. Slots past the
// live entries exist on disk as zero-filled space.
type Unknown2Scheduler struct {
	SchedulerBase
	// AllocatedCount is the table capacity; it must be at least len(Entries).
	AllocatedCount uint8
	Entries        []Unknown2Entry
}

func (s *Unknown2Scheduler) Type() SchedulerType { return SchedulerUnknown2 }

func unknown2PayloadSize(t Target) int {
	if t.Version < 11 {
		return 12
	}
	return 16
}

// unknown2EntrySize covers type, padding and timeline start ahead of the payload.
func unknown2EntrySize(t Target) int { return 4 + unknown2PayloadSize(t) }

func (s *Unknown2Scheduler) decode(r *Reader, t Target) error {
	if err := s.decodeBase(r, SchedulerUnknown2); err != nil {
		return err
	}
	count := r.ReadUint8()
	s.AllocatedCount = r.ReadUint8()
	r.SkipPadding(2)
	if err := r.Err(); err != nil {
		return err
	}
	if count > s.AllocatedCount {
		return fmt.Errorf("%w: %d live, %d allocated", ErrEntryCount, count, s.AllocatedCount)
	}
	payloadSize := unknown2PayloadSize(t)
	s.Entries = readList(r, int(count), func(r *Reader) Unknown2Entry {
		var e Unknown2Entry
		e.Type = r.ReadUint8()
		r.SkipPadding(1)
		e.TimelineStart = r.ReadUint16()
		e.Payload = r.ReadBytes(payloadSize)
		return e
	})
	r.SkipPadding(int(s.AllocatedCount-count) * unknown2EntrySize(t))
	return r.Err()
}

func (s *Unknown2Scheduler) encode(w *Writer, t Target) error {
	if err := checkCount("entries", len(s.Entries), math.MaxUint8); err != nil {
		return err
	}
	if len(s.Entries) > int(s.AllocatedCount) {
		return fmt.Errorf("%w: %d entries with %d allocated", ErrTooManyItems, len(s.Entries), s.AllocatedCount)
	}
	payloadSize := unknown2PayloadSize(t)
	for i, e := range s.Entries {
		if err := checkLength(fmt.Sprintf("entry %d payload", i), len(e.Payload), payloadSize); err != nil {
			return err
		}
	}
	if err := s.encodeBase(w, SchedulerUnknown2); err != nil {
		return err
	}
	w.WriteUint8(uint8(len(s.Entries)))
	w.WriteUint8(s.AllocatedCount)
	w.WriteZeros(2)
	for _, e := range s.Entries {
		w.WriteUint8(e.Type)
		w.WriteZeros(1)
		w.WriteUint16(e.TimelineStart)
		w.WriteBytes(e.Payload)
	}
	w.WriteZeros((int(s.AllocatedCount) - len(s.Entries)) * unknown2EntrySize(t))
	return w.Err()
}

// Unknown3Scheduler binds an attach. It only exists up to version 10.
type Unknown3Scheduler struct {
	SchedulerBase
	Unknown10 uint8
	Unknown11 uint8
	AttachID  uint16
	Unknown1C int32
}

func (s *Unknown3Scheduler) Type() SchedulerType { return SchedulerUnknown3 }

func checkUnknown3Version(t Target) error {
	if t.Version > 10 {
		return fmt.Errorf("%w: %s scheduler does not exist in version %d", ErrUnsupportedVersion, SchedulerUnknown3, t.Version)
	}
	return nil
}

func (s *Unknown3Scheduler) decode(r *Reader, t Target) error {
	if err := checkUnknown3Version(t); err != nil {
		return err
	}
	if err := s.decodeBase(r, SchedulerUnknown3); err != nil {
		return err
	}
	s.Unknown10 = r.ReadUint8()
	s.Unknown11 = r.ReadUint8()
	s.AttachID = r.ReadUint16()
	r.SkipPadding(8)
	s.Unknown1C = r.ReadInt32()
	return r.Err()
}

func (s *Unknown3Scheduler) encode(w *Writer, t Target) error {
	if err := checkUnknown3Version(t); err != nil {
		return err
	}
	if err := s.encodeBase(w, SchedulerUnknown3); err != nil {
		return err
	}
	w.WriteUint8(s.Unknown10)
	w.WriteUint8(s.Unknown11)
	w.WriteUint16(s.AttachID)
	w.WriteZeros(8)
	w.WriteInt32(s.Unknown1C)
	return w.Err()
}

// UnhandledScheduler keeps the raw body of a scheduler kind this package
// does not model, common prefix included.
type UnhandledScheduler struct {
	RawType SchedulerType
	Data    []byte
}

func (s *UnhandledScheduler) Type() SchedulerType { return s.RawType }

func (s *UnhandledScheduler) decode(r *Reader, _ Target) error {
	s.Data = r.ReadRest()
	return r.Err()
}

func (s *UnhandledScheduler) encode(w *Writer, _ Target) error {
	w.WriteBytes(s.Data)
	return nil
}
