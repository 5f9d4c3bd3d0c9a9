package display

import (
	"image"

	"github.com/bodgit/mirror/rgb565"
)

// Framebuffer is an in-memory surface.
type Framebuffer struct {
	window
	m *rgb565.Image
}

// NewFramebuffer returns a blank Framebuffer of the given size.
func NewFramebuffer(width, height int) *Framebuffer {
	r := image.Rect(0, 0, width, height)
	return &Framebuffer{
		window: newWindow(r),
		m:      rgb565.NewImage(r),
	}
}

// PushPixels writes big-endian RGB565 pixels at the cursor.
func (f *Framebuffer) PushPixels(p []byte) error {
	return f.push(p, func(pt image.Point, c rgb565.Color) error {
		f.m.SetRGB565(pt.X, pt.Y, c)
		return nil
	})
}

// Fill sets every pixel to c, ignoring the write window.
func (f *Framebuffer) Fill(c rgb565.Color) {
	f.m.Fill(c)
}

// Image returns the contents of the Framebuffer. It is not a copy.
func (f *Framebuffer) Image() *rgb565.Image {
	return f.m
}
