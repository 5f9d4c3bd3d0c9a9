/*
Package display provides surfaces that bitmaps can be drawn onto.

Every surface follows the write window model of display controllers such as
the RA8875 or ILI9341: SetWindow defines a rectangle and moves the cursor to
its top-left corner, SetCursor moves the cursor anywhere, and each pixel
pushed is written at the cursor which then advances, wrapping back to the
left edge of the window on the next row. Pixels that fall outside the device
are dropped.
*/
package display

import (
	"image"

	"github.com/bodgit/mirror/bitmap"
	"github.com/bodgit/mirror/rgb565"
)

var (
	_ bitmap.Surface = (*Framebuffer)(nil)
	_ bitmap.Surface = (*Displayer)(nil)
	_ bitmap.Surface = (*Drawer)(nil)
)

type window struct {
	bounds image.Rectangle
	rect   image.Rectangle
	cursor image.Point
}

func newWindow(bounds image.Rectangle) window {
	return window{
		bounds: bounds,
		rect:   bounds,
		cursor: bounds.Min,
	}
}

func (w *window) Size() (width, height int) {
	return w.bounds.Dx(), w.bounds.Dy()
}

func (w *window) SetWindow(x, y, width, height int) error {
	w.rect = image.Rect(x, y, x+width, y+height)
	w.cursor = w.rect.Min
	return nil
}

func (w *window) SetCursor(x, y int) error {
	w.cursor = image.Pt(x, y)
	return nil
}

// Window returns the active write window.
func (w *window) Window() image.Rectangle {
	return w.rect
}

// Cursor returns the position the next pixel will be written to.
func (w *window) Cursor() image.Point {
	return w.cursor
}

// push walks the big-endian pixels in p, calling set for each one that lands
// on the device. A trailing odd byte is ignored. It returns the first error
// from set.
func (w *window) push(p []byte, set func(pt image.Point, c rgb565.Color) error) error {
	for i := 0; i+1 < len(p); i += 2 {
		if w.cursor.In(w.bounds) {
			if err := set(w.cursor, rgb565.FromBytes(p[i], p[i+1])); err != nil {
				return err
			}
		}
		w.cursor.X++
		if w.cursor.X >= w.rect.Max.X {
			w.cursor.X = w.rect.Min.X
			w.cursor.Y++
		}
	}
	return nil
}

// runs is like push but groups consecutive pixels on the same row, calling
// draw once per run with the run's first point and its pixels.
func (w *window) runs(p []byte, draw func(pt image.Point, p []byte) error) error {
	var (
		start image.Point
		run   []byte
	)
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		err := draw(start, run)
		run = run[:0]
		return err
	}

	for i := 0; i+1 < len(p); i += 2 {
		if w.cursor.In(w.bounds) {
			if len(run) == 0 {
				start = w.cursor
			}
			run = append(run, p[i], p[i+1])
		} else if err := flush(); err != nil {
			return err
		}
		w.cursor.X++
		if w.cursor.X >= w.rect.Max.X {
			if err := flush(); err != nil {
				return err
			}
			w.cursor.X = w.rect.Min.X
			w.cursor.Y++
		}
	}
	return flush()
}
