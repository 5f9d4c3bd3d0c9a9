package display

import (
	"image"

	"github.com/bodgit/mirror/rgb565"
	periphdisplay "periph.io/x/conn/v3/display"
)

// Drawer adapts a periph.io display device. Each horizontal run of pushed
// pixels is sent to the device with a single Draw call.
type Drawer struct {
	window
	d periphdisplay.Drawer
}

// NewDrawer wraps d.
func NewDrawer(d periphdisplay.Drawer) *Drawer {
	return &Drawer{
		window: newWindow(d.Bounds()),
		d:      d,
	}
}

// PushPixels writes big-endian RGB565 pixels at the cursor.
func (d *Drawer) PushPixels(p []byte) error {
	return d.runs(p, func(pt image.Point, p []byte) error {
		r := image.Rect(pt.X, pt.Y, pt.X+len(p)/2, pt.Y+1)
		m := &rgb565.Image{
			Pix:    p,
			Stride: len(p),
			Rect:   r,
		}
		return d.d.Draw(r, m, r.Min)
	})
}

// Halt stops the underlying device.
func (d *Drawer) Halt() error {
	return d.d.Halt()
}

func (d *Drawer) String() string {
	return d.d.String()
}
