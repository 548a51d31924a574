package efx

import "fmt"

// Vector4 is four consecutive 32-bit floats.
type Vector4 struct {
	X, Y, Z, W float32
}

func (v Vector4) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", v.X, v.Y, v.Z, v.W)
}

// Float records are read field by field rather than through ReadFixed:
// encoding/binary widens float32 to float64, which quiets signaling NaNs.

func readVector4(r *Reader) Vector4 {
	return Vector4{X: r.ReadFloat32(), Y: r.ReadFloat32(), Z: r.ReadFloat32(), W: r.ReadFloat32()}
}

func writeVector4(w *Writer, v Vector4) {
	w.WriteFloat32(v.X)
	w.WriteFloat32(v.Y)
	w.WriteFloat32(v.Z)
	w.WriteFloat32(v.W)
}

// Color is an RGBA color stored as four bytes in that order.
type Color struct {
	R, G, B, A uint8
}

// Packed returns the color as 0xRRGGBBAA.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// ColorFromPacked is the inverse of Color.Packed.
func ColorFromPacked(v uint32) Color {
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

func (c Color) String() string { return fmt.Sprintf("#%08X", c.Packed()) }

// UV is a texture coordinate pair.
type UV struct {
	U, V float32
}

func readUV(r *Reader) UV {
	return UV{U: r.ReadFloat32(), V: r.ReadFloat32()}
}

func writeUV(w *Writer, uv UV) {
	w.WriteFloat32(uv.U)
	w.WriteFloat32(uv.V)
}
