package rgb565

import (
	"image"
	"image/color"
)

// Image is an in-memory image whose At method returns Color values. Each
// pixel occupies two bytes of Pix, high byte first.
type Image struct {
	// Pix holds the image's pixels. The pixel at (x, y) starts at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*2].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewImage returns a new Image with the given bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &Image{
		Pix:    make([]uint8, 2*w*h),
		Stride: 2 * w,
		Rect:   r,
	}
}

func (p *Image) ColorModel() color.Model { return Model }

func (p *Image) Bounds() image.Rectangle { return p.Rect }

func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the Color at (x, y), or zero outside the bounds.
func (p *Image) RGB565At(x, y int) Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return 0
	}
	i := p.PixOffset(x, y)
	return FromBytes(p.Pix[i], p.Pix[i+1])
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, Model.Convert(c).(Color))
}

// SetRGB565 stores c at (x, y). Points outside the bounds are ignored.
func (p *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i] = byte(c >> 8)
	p.Pix[i+1] = byte(c)
}

// Fill sets every pixel to c.
func (p *Image) Fill(c Color) {
	hi, lo := byte(c>>8), byte(c)
	for i := 0; i+1 < len(p.Pix); i += 2 {
		p.Pix[i] = hi
		p.Pix[i+1] = lo
	}
}

// Opaque scans the entire image and reports whether it is fully opaque,
// which it always is.
func (p *Image) Opaque() bool {
	return true
}
