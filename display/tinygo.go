package display

import (
	"image"

	"github.com/bodgit/mirror/rgb565"
	"tinygo.org/x/drivers"
)

// Displayer adapts a TinyGo display driver. Pixels are written with SetPixel
// into the driver's buffer; Display sends the buffer to the panel.
type Displayer struct {
	window
	d drivers.Displayer
}

// NewDisplayer wraps d.
func NewDisplayer(d drivers.Displayer) *Displayer {
	w, h := d.Size()
	return &Displayer{
		window: newWindow(image.Rect(0, 0, int(w), int(h))),
		d:      d,
	}
}

// PushPixels writes big-endian RGB565 pixels at the cursor.
func (d *Displayer) PushPixels(p []byte) error {
	return d.push(p, func(pt image.Point, c rgb565.Color) error {
		d.d.SetPixel(int16(pt.X), int16(pt.Y), rgb565.RGBAOf(c))
		return nil
	})
}

// Display flushes the driver's buffer to the panel.
func (d *Displayer) Display() error {
	return d.d.Display()
}
