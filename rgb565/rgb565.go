/*
Package rgb565 implements the 16-bit 5-6-5 color encoding used by small TFT
display controllers.

A Color packs five bits of red, six bits of green and five bits of blue into
a uint16 with red in the most significant bits. Display controllers expect
each pixel as two bytes, high byte first, which is also how Image stores its
pixels.
*/
package rgb565

import (
	"image/color"
)

const (
	mask5 = 0x1f
	mask6 = 0x3f
)

// Color is a 16-bit 5-6-5 color.
type Color uint16

// Pack converts 8-bit red, green and blue components into a Color by
// truncating the low bits of each component.
func Pack(r, g, b uint8) Color {
	return Color(uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b>>3))
}

// From555 converts a 1-5-5-5 pixel, as stored in a 16-bit bitmap, into a
// Color. The top ten bits move up one place to open a sixth green bit, which
// is forced on, and blue is kept as-is.
func From555(raw uint16) Color {
	return Color((raw&0x7fe0)<<1 | 0x20 | raw&0x001f)
}

// To555 is the inverse of From555, dropping the low green bit.
func To555(c Color) uint16 {
	return uint16(c)>>1&0x7fe0 | uint16(c)&0x001f
}

// Components returns the raw 5-bit red, 6-bit green and 5-bit blue fields.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c>>11) & mask5, uint8(c>>5) & mask6, uint8(c) & mask5
}

// RGB returns the color expanded to 8 bits per component by replicating the
// high bits into the low bits.
func (c Color) RGB() (r, g, b uint8) {
	r, g, b = c.Components()
	return r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2
}

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xffff
}

// AppendBytes appends c to p high byte first.
func (c Color) AppendBytes(p []byte) []byte {
	return append(p, byte(c>>8), byte(c))
}

// FromBytes reads a Color stored high byte first.
func FromBytes(hi, lo byte) Color {
	return Color(uint16(hi)<<8 | uint16(lo))
}

// Model converts any color.Color into a Color.
var Model = color.ModelFunc(model)

func model(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return Pack(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGBAOf returns c as a color.RGBA, the form TinyGo display drivers take.
func RGBAOf(c Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{r, g, b, 0xff}
}
