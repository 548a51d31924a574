package efx

import "fmt"

// Opcode identifies the kind of a command chunk.
type Opcode uint16

const (
	OpInvalid Opcode = 0

	// Obsolete opcodes, still found in older files.
	OpMode       Opcode = 0x400
	OpViewMatrix Opcode = 0x401
	OpTexView    Opcode = 0x402
	OpScreenData Opcode = 0x403

	OpSchedulerManagerReset Opcode = 0x500
	OpAttachManagerReset    Opcode = 0x510
	OpGeneratorManagerReset Opcode = 0x520
	OpElementManagerReset   Opcode = 0x530
	OpResourceDelete        Opcode = 0x540

	OpSchedulerMetaAdd    Opcode = 0x600
	OpSchedulerMetaDelete Opcode = 0x601
	OpSchedulerPageAdd    Opcode = 0x610
	OpSchedulerPageDelete Opcode = 0x611
	OpSchedulerAdd        Opcode = 0x620

	OpAttachAdd            Opcode = 0x700
	OpGeneratorAdd         Opcode = 0x800
	OpGeneratorMemoryReset Opcode = 0x900
	OpElementAdd           Opcode = 0xA00
	OpResourceAdd          Opcode = 0xB00

	OpEffectCyanSystem Opcode = 0x1000
	OpCharacterData    Opcode = 0x1001
	OpFirst3DPosition  Opcode = 0x1002
	OpObjectBoneID     Opcode = 0x1003

	OpZeek3System   Opcode = 0x2000
	OpMatrix3System Opcode = 0x3000
	OpArrangeSystem Opcode = 0x4000
	OpKHExtension1  Opcode = 0x5000
)

var opcodeNames = map[Opcode]string{
	OpInvalid:               "Invalid",
	OpMode:                  "Mode",
	OpViewMatrix:            "ViewMatrix",
	OpTexView:               "TexView",
	OpScreenData:            "ScreenData",
	OpSchedulerManagerReset: "SchedulerManagerReset",
	OpAttachManagerReset:    "AttachManagerReset",
	OpGeneratorManagerReset: "GeneratorManagerReset",
	OpElementManagerReset:   "ElementManagerReset",
	OpResourceDelete:        "ResourceDelete",
	OpSchedulerMetaAdd:      "SchedulerMetaAdd",
	OpSchedulerMetaDelete:   "SchedulerMetaDelete",
	OpSchedulerPageAdd:      "SchedulerPageAdd",
	OpSchedulerPageDelete:   "SchedulerPageDelete",
	OpSchedulerAdd:          "SchedulerAdd",
	OpAttachAdd:             "AttachAdd",
	OpGeneratorAdd:          "GeneratorAdd",
	OpGeneratorMemoryReset:  "GeneratorMemoryReset",
	OpElementAdd:            "ElementAdd",
	OpResourceAdd:           "ResourceAdd",
	OpEffectCyanSystem:      "EffectCyanSystem",
	OpCharacterData:         "CharacterData",
	OpFirst3DPosition:       "First3DPosition",
	OpObjectBoneID:          "ObjectBoneId",
	OpZeek3System:           "Zeek3System",
	OpMatrix3System:         "Matrix3System",
	OpArrangeSystem:         "ArrangeSystem",
	OpKHExtension1:          "KHExtension1",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(0x%X)", uint16(op))
}

// Command is one decoded chunk of an effect file.
//
// The set of implementations is closed: *ResourceAddCommand,
// *SchedulerAddCommand and *UnhandledCommand.
type Command interface {
	Opcode() Opcode

	// decode reads the chunk payload that follows the command header.
	decode(r *Reader, dataOffset int32, t Target) error
	// encode writes the payload and returns the data offset for the header.
	encode(w *Writer, t Target) (int32, error)
}

// commandFactories lists the opcodes that have a structural model.
var commandFactories = map[Opcode]func() Command{
	OpResourceAdd:  func() Command { return new(ResourceAddCommand) },
	OpSchedulerAdd: func() Command { return new(SchedulerAddCommand) },
}

// NewCommand returns an empty command for op. Opcodes without a structural
// model yield an *UnhandledCommand that keeps the payload verbatim.
func NewCommand(op Opcode) Command {
	if factory, ok := commandFactories[op]; ok {
		return factory()
	}
	return &UnhandledCommand{Op: op}
}

// UnhandledCommand carries the payload of a command kind this package does
// not model. It round-trips byte for byte.
type UnhandledCommand struct {
	Op         Opcode
	DataOffset int32
	Data       []byte
}

func (c *UnhandledCommand) Opcode() Opcode { return c.Op }

func (c *UnhandledCommand) decode(r *Reader, dataOffset int32, _ Target) error {
	c.DataOffset = dataOffset
	c.Data = r.ReadRest()
	return r.Err()
}

func (c *UnhandledCommand) encode(w *Writer, _ Target) (int32, error) {
	w.WriteBytes(c.Data)
	return c.DataOffset, nil
}
