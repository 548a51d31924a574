package efx

import "fmt"

// ResourceType is the kind byte of a ResourceKey.
type ResourceType uint8

const (
	ResourceInvalid   ResourceType = 0
	ResourceUnknown50 ResourceType = 0x50
	ResourceUnknown51 ResourceType = 0x51
	ResourceTexture   ResourceType = 0x52
	ResourceModel     ResourceType = 0x53
	ResourceUnknown54 ResourceType = 0x54
	ResourceUnknown56 ResourceType = 0x56
	ResourceSound     ResourceType = 0x57
	ResourceUnknown58 ResourceType = 0x58
)

func (t ResourceType) String() string {
	switch t {
	case ResourceInvalid:
		return "Invalid"
	case ResourceTexture:
		return "Texture"
	case ResourceModel:
		return "Model"
	case ResourceSound:
		return "Sound"
	case ResourceUnknown50, ResourceUnknown51, ResourceUnknown54, ResourceUnknown56, ResourceUnknown58:
		return fmt.Sprintf("Unknown%X", uint8(t))
	}
	return fmt.Sprintf("ResourceType(0x%02X)", uint8(t))
}

// ResourceKey names a resource inside an effect.
type ResourceKey struct {
	Unknown uint16
	Type    ResourceType
	ID      uint8
}

func (k ResourceKey) String() string {
	return fmt.Sprintf("%s:%d#%d", k.Type, k.Unknown, k.ID)
}

func readResourceKey(r *Reader) ResourceKey {
	return ResourceKey{
		Unknown: r.ReadUint16(),
		Type:    ResourceType(r.ReadUint8()),
		ID:      r.ReadUint8(),
	}
}

func (k ResourceKey) write(w *Writer) {
	w.WriteUint16(k.Unknown)
	w.WriteUint8(uint8(k.Type))
	w.WriteUint8(k.ID)
}

// Resource is the body of a resource-add command.
//
// The set of implementations is closed: *Unknown50Resource,
// *Unknown51Resource, *ModelResource and *UnhandledResource.
type Resource interface {
	Type() ResourceType

	decode(r *Reader, t Target) error
	encode(w *Writer, t Target) error
}

var resourceFactories = map[ResourceType]func() Resource{
	ResourceUnknown50: func() Resource { return new(Unknown50Resource) },
	ResourceUnknown51: func() Resource { return new(Unknown51Resource) },
	ResourceModel:     func() Resource { return new(ModelResource) },
}

// NewResource returns an empty resource of kind t. Kinds without a
// structural model yield an *UnhandledResource.
func NewResource(t ResourceType) Resource {
	if factory, ok := resourceFactories[t]; ok {
		return factory()
	}
	return &UnhandledResource{RawType: t}
}

// UnhandledResource keeps the bytes of a resource kind this package does not
// model. It consumes the rest of its chunk, trailing padding included.
type UnhandledResource struct {
	RawType ResourceType
	Data    []byte
}

func (res *UnhandledResource) Type() ResourceType { return res.RawType }

func (res *UnhandledResource) decode(r *Reader, _ Target) error {
	res.Data = r.ReadRest()
	return r.Err()
}

func (res *UnhandledResource) encode(w *Writer, _ Target) error {
	w.WriteBytes(res.Data)
	return nil
}

// ResourceAddCommand registers a resource under a key.
type ResourceAddCommand struct {
	Key      ResourceKey
	Resource Resource
	// Padding holds chunk bytes left after the resource, nil when there are none.
	Padding    []byte
	DataOffset int32
}

func (c *ResourceAddCommand) Opcode() Opcode { return OpResourceAdd }

func (c *ResourceAddCommand) decode(r *Reader, dataOffset int32, t Target) error {
	c.DataOffset = dataOffset
	c.Key = readResourceKey(r)
	if err := r.Err(); err != nil {
		return err
	}
	res := NewResource(c.Key.Type)
	if err := res.decode(r, t); err != nil {
		return fmt.Errorf("resource %s: %w", c.Key, err)
	}
	c.Resource = res
	c.Padding = r.ReadRest()
	return r.Err()
}

func (c *ResourceAddCommand) encode(w *Writer, t Target) (int32, error) {
	if c.Resource == nil {
		return 0, fmt.Errorf("%w: resource %s has no body", ErrMissingField, c.Key)
	}
	if c.Resource.Type() != c.Key.Type {
		return 0, fmt.Errorf("%w: key %s holds a %s resource", ErrFieldValue, c.Key, c.Resource.Type())
	}
	c.Key.write(w)
	if err := c.Resource.encode(w, t); err != nil {
		return 0, fmt.Errorf("resource %s: %w", c.Key, err)
	}
	w.WriteBytes(c.Padding)
	return c.DataOffset, w.Err()
}
