package efx

import (
	"fmt"
	"math"
)

// SchedulerType is the discriminant of a scheduler body.
type SchedulerType uint8

const (
	SchedulerUnknown0 SchedulerType = 0
	SchedulerUnknown1 SchedulerType = 1
	SchedulerUnknown2 SchedulerType = 2
	SchedulerUnknown3 SchedulerType = 3
)

func (t SchedulerType) String() string {
	if t <= SchedulerUnknown3 {
		return fmt.Sprintf("Unknown%d", uint8(t))
	}
	return fmt.Sprintf("SchedulerType(%d)", uint8(t))
}

// Scheduler is the body of a scheduler-add command.
//
// The set of implementations is closed: *Unknown0Scheduler,
// *Unknown1Scheduler, *Unknown2Scheduler, *Unknown3Scheduler and
// *UnhandledScheduler.
type Scheduler interface {
	Type() SchedulerType

	decode(r *Reader, t Target) error
	encode(w *Writer, t Target) error
}

var schedulerFactories = map[SchedulerType]func() Scheduler{
	SchedulerUnknown0: func() Scheduler { return new(Unknown0Scheduler) },
	SchedulerUnknown1: func() Scheduler { return new(Unknown1Scheduler) },
	SchedulerUnknown2: func() Scheduler { return new(Unknown2Scheduler) },
	SchedulerUnknown3: func() Scheduler { return new(Unknown3Scheduler) },
}

// NewScheduler returns an empty scheduler of kind t. Unknown kinds yield an
// *UnhandledScheduler.
func NewScheduler(t SchedulerType) Scheduler {
	if factory, ok := schedulerFactories[t]; ok {
		return factory()
	}
	return &UnhandledScheduler{RawType: t}
}

// SchedulerBase is the 16-byte prefix shared by every scheduler body.
type SchedulerBase struct {
	ID uint8
	// Unknown2 is 0 or 1.
	Unknown2 uint8
	// Unknown5 is 0, 1 or 3.
	Unknown5      uint8
	TimelineStart int32
	TimelineEnd   int32
}

func validUnknown2(v uint8) bool { return v == 0 || v == 1 }
func validUnknown5(v uint8) bool { return v == 0 || v == 1 || v == 3 }

func (b *SchedulerBase) decodeBase(r *Reader, want SchedulerType) error {
	b.ID = r.ReadUint8()
	typ := SchedulerType(r.ReadUint8())
	b.Unknown2 = r.ReadUint8()
	r.SkipPadding(2)
	b.Unknown5 = r.ReadUint8()
	r.SkipPadding(2)
	b.TimelineStart = r.ReadInt32()
	b.TimelineEnd = r.ReadInt32()
	if err := r.Err(); err != nil {
		return err
	}
	switch {
	case typ != want:
		return fmt.Errorf("%w: scheduler body says %s, command says %s", ErrTypeMismatch, typ, want)
	case !validUnknown2(b.Unknown2):
		return fmt.Errorf("%w: scheduler unknown2 = %d", ErrInvalidValue, b.Unknown2)
	case !validUnknown5(b.Unknown5):
		return fmt.Errorf("%w: scheduler unknown5 = %d", ErrInvalidValue, b.Unknown5)
	}
	return nil
}

func (b *SchedulerBase) encodeBase(w *Writer, typ SchedulerType) error {
	if !validUnknown2(b.Unknown2) {
		return fmt.Errorf("%w: scheduler unknown2 = %d", ErrFieldValue, b.Unknown2)
	}
	if !validUnknown5(b.Unknown5) {
		return fmt.Errorf("%w: scheduler unknown5 = %d", ErrFieldValue, b.Unknown5)
	}
	w.WriteUint8(b.ID)
	w.WriteUint8(uint8(typ))
	w.WriteUint8(b.Unknown2)
	w.WriteZeros(2)
	w.WriteUint8(b.Unknown5)
	w.WriteZeros(2)
	w.WriteInt32(b.TimelineStart)
	w.WriteInt32(b.TimelineEnd)
	return w.Err()
}

// SchedulerAddCommand places a scheduler on a page of a scheduler meta.
type SchedulerAddCommand struct {
	// MetaID is a single byte before version 11.
	MetaID      uint16
	PageID      uint8
	SchedulerID uint8
	Scheduler   Scheduler
	// Padding holds chunk bytes left after the scheduler, nil when there are none.
	Padding    []byte
	DataOffset int32
}

func (c *SchedulerAddCommand) Opcode() Opcode { return OpSchedulerAdd }

func schedulerAddPadding(t Target) int {
	if t.Version < 11 {
		return 12
	}
	return 11
}

func (c *SchedulerAddCommand) decode(r *Reader, dataOffset int32, t Target) error {
	c.DataOffset = dataOffset
	if t.Version < 11 {
		c.MetaID = uint16(r.ReadUint8())
	} else {
		c.MetaID = r.ReadUint16()
	}
	c.PageID = r.ReadUint8()
	c.SchedulerID = r.ReadUint8()
	typ := SchedulerType(r.ReadUint8())
	r.SkipPadding(schedulerAddPadding(t))
	if err := r.Err(); err != nil {
		return err
	}
	s := NewScheduler(typ)
	if err := s.decode(r, t); err != nil {
		return fmt.Errorf("scheduler %d (%s): %w", c.SchedulerID, typ, err)
	}
	c.Scheduler = s
	c.Padding = r.ReadRest()
	return r.Err()
}

func (c *SchedulerAddCommand) encode(w *Writer, t Target) (int32, error) {
	if c.Scheduler == nil {
		return 0, fmt.Errorf("%w: scheduler %d has no body", ErrMissingField, c.SchedulerID)
	}
	if t.Version < 11 {
		if c.MetaID > math.MaxUint8 {
			return 0, fmt.Errorf("%w: meta id %d does not fit in a byte before version 11", ErrTooManyItems, c.MetaID)
		}
		w.WriteUint8(uint8(c.MetaID))
	} else {
		w.WriteUint16(c.MetaID)
	}
	w.WriteUint8(c.PageID)
	w.WriteUint8(c.SchedulerID)
	w.WriteUint8(uint8(c.Scheduler.Type()))
	w.WriteZeros(schedulerAddPadding(t))
	if err := c.Scheduler.encode(w, t); err != nil {
		return 0, fmt.Errorf("scheduler %d (%s): %w", c.SchedulerID, c.Scheduler.Type(), err)
	}
	w.WriteBytes(c.Padding)
	return c.DataOffset, w.Err()
}
