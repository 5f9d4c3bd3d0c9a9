package mirror

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/mirror/bitmap"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

type displayer interface {
	Display() error
}

// DrawIcon draws the named icon in the middle of s. If s buffers pixels, as
// TinyGo display drivers do, the buffer is flushed afterwards.
func (m *Mirror) DrawIcon(s bitmap.Surface, name string) (bitmap.Stats, error) {
	icon, err := m.db.FindIcon(name)
	if err != nil {
		return bitmap.Stats{}, err
	}
	if icon == nil {
		return bitmap.Stats{}, fmt.Errorf("%w: %s", ErrUnknownIcon, name)
	}

	f, err := bitmap.Open(m.fsys, icon.Path)
	if err != nil {
		return bitmap.Stats{}, err
	}

	x, y := bitmap.Centre(s, f.Header())

	stats, err := f.Draw(s, x, y)
	if err != nil {
		return stats, err
	}

	if stats.Degraded() {
		m.logger.Printf("Icon \"%s\" only partly drawn, %s, %d short, unsupported depth %t\n", name, stats, stats.Short, stats.Unsupported)
	}

	if d, ok := s.(displayer); ok {
		return stats, d.Display()
	}

	return stats, nil
}

// PrepareOptions controls how PrepareIcon converts an image.
type PrepareOptions struct {
	// BitsPerPixel is 16, 24 or 32. It defaults to 24.
	BitsPerPixel int
	// Colors, if non-zero, reduces the image to at most that many colors.
	Colors int
	// Width and Height, if both non-zero, are the box the image is scaled
	// to fit, keeping its aspect ratio.
	Width, Height int
}

func fit(m image.Image, width, height int) image.Image {
	b := m.Bounds()

	// Compare width/b.Dx() against height/b.Dy() without dividing
	w, h := width, b.Dy()*width/b.Dx()
	if b.Dy()*width > height*b.Dx() {
		w, h = b.Dx()*height/b.Dy(), height
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	return dst
}

// PrepareIcon converts m into a bitmap the appliance can draw and writes it
// to w. Transparent areas come out black, the color of the mirror.
func PrepareIcon(w io.Writer, m image.Image, o PrepareOptions) error {
	if o.BitsPerPixel == 0 {
		o.BitsPerPixel = 24
	}

	if m.Bounds().Empty() {
		return bitmap.ErrEmptyImage
	}

	if o.Width > 0 && o.Height > 0 {
		m = fit(m, o.Width, o.Height)
	}

	if o.Colors > 0 {
		b := m.Bounds()
		q := quantize.MedianCutQuantizer{}
		pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, o.Colors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
		m = pm
	}

	return bitmap.Encode(w, m, o.BitsPerPixel)
}
