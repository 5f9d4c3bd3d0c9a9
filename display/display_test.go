package display

import (
	"bytes"
	"image"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/bodgit/mirror/bitmap"
	"github.com/bodgit/mirror/rgb565"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pixels(c ...rgb565.Color) []byte {
	var b []byte
	for _, v := range c {
		b = v.AppendBytes(b)
	}
	return b
}

func TestFramebufferWindow(t *testing.T) {
	f := NewFramebuffer(4, 4)

	w, h := f.Size()
	assert.Equal(t, []int{4, 4}, []int{w, h})
	assert.Equal(t, image.Rect(0, 0, 4, 4), f.Window())

	require.Nil(t, f.SetWindow(1, 1, 2, 2))
	assert.Equal(t, image.Pt(1, 1), f.Cursor())

	require.Nil(t, f.PushPixels(pixels(1, 2, 3, 4)))
	assert.Equal(t, image.Pt(1, 3), f.Cursor())

	m := f.Image()
	assert.Equal(t, rgb565.Color(1), m.RGB565At(1, 1))
	assert.Equal(t, rgb565.Color(2), m.RGB565At(2, 1))
	assert.Equal(t, rgb565.Color(3), m.RGB565At(1, 2))
	assert.Equal(t, rgb565.Color(4), m.RGB565At(2, 2))
	assert.Equal(t, rgb565.Color(0), m.RGB565At(3, 1))
}

func TestFramebufferClip(t *testing.T) {
	f := NewFramebuffer(4, 4)

	require.Nil(t, f.SetWindow(2, 3, 4, 2))
	require.Nil(t, f.SetCursor(2, 3))
	// Trailing odd byte is ignored
	require.Nil(t, f.PushPixels(append(pixels(1, 2, 3, 4, 5, 6), 0xff)))

	m := f.Image()
	assert.Equal(t, rgb565.Color(1), m.RGB565At(2, 3))
	assert.Equal(t, rgb565.Color(2), m.RGB565At(3, 3))
	assert.Equal(t, image.Pt(4, 4), f.Cursor())

	f.Fill(0xffff)
	assert.Equal(t, rgb565.Color(0xffff), m.RGB565At(0, 0))
}

func TestFramebufferBitmap(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(0, 0, color.RGBA{0xff, 0, 0, 0xff})
	src.SetRGBA(1, 0, color.RGBA{0, 0xff, 0, 0xff})
	src.SetRGBA(2, 0, color.RGBA{0, 0, 0xff, 0xff})
	src.SetRGBA(0, 1, color.RGBA{0xff, 0xff, 0xff, 0xff})

	b := new(bytes.Buffer)
	require.Nil(t, bitmap.Encode(b, src, 24))

	bm, err := bitmap.Open(fstest.MapFS{"icon.bmp": {Data: b.Bytes()}}, "icon.bmp")
	require.Nil(t, err)

	f := NewFramebuffer(16, 16)
	_, err = bm.Draw(f, 5, 5)
	require.Nil(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), f.Window())

	// Each row lands one below the window origin
	m := f.Image()
	assert.Equal(t, rgb565.Color(0xf800), m.RGB565At(5, 6))
	assert.Equal(t, rgb565.Color(0x07e0), m.RGB565At(6, 6))
	assert.Equal(t, rgb565.Color(0x001f), m.RGB565At(7, 6))
	assert.Equal(t, rgb565.Color(0xffff), m.RGB565At(5, 7))
	assert.Equal(t, rgb565.Color(0x0000), m.RGB565At(6, 7))
	assert.Equal(t, rgb565.Color(0x0000), m.RGB565At(5, 5))
}

type fakeDisplayer struct {
	w, h     int16
	pixels   map[image.Point]color.RGBA
	displays int
}

func (d *fakeDisplayer) Size() (int16, int16) { return d.w, d.h }

func (d *fakeDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.pixels[image.Pt(int(x), int(y))] = c
}

func (d *fakeDisplayer) Display() error {
	d.displays++
	return nil
}

func TestDisplayer(t *testing.T) {
	fd := &fakeDisplayer{w: 8, h: 4, pixels: make(map[image.Point]color.RGBA)}
	d := NewDisplayer(fd)

	w, h := d.Size()
	assert.Equal(t, []int{8, 4}, []int{w, h})

	require.Nil(t, d.SetWindow(6, 3, 4, 1))
	require.Nil(t, d.PushPixels(pixels(0xf800, 0x07e0, 0x001f)))
	require.Nil(t, d.Display())

	assert.Equal(t, map[image.Point]color.RGBA{
		{6, 3}: {0xff, 0, 0, 0xff},
		{7, 3}: {0, 0xff, 0, 0xff},
	}, fd.pixels)
	assert.Equal(t, 1, fd.displays)
}

type draw struct {
	r   image.Rectangle
	pix []rgb565.Color
}

type fakeDrawer struct {
	bounds image.Rectangle
	draws  []draw
	halted bool
}

func (d *fakeDrawer) String() string { return "fake" }

func (d *fakeDrawer) Halt() error {
	d.halted = true
	return nil
}

func (d *fakeDrawer) ColorModel() color.Model { return rgb565.Model }

func (d *fakeDrawer) Bounds() image.Rectangle { return d.bounds }

func (d *fakeDrawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	var pix []rgb565.Color
	for x := 0; x < r.Dx(); x++ {
		pix = append(pix, rgb565.Model.Convert(src.At(sp.X+x, sp.Y)).(rgb565.Color))
	}
	d.draws = append(d.draws, draw{r, pix})
	return nil
}

func TestDrawer(t *testing.T) {
	fd := &fakeDrawer{bounds: image.Rect(0, 0, 4, 4)}
	d := NewDrawer(fd)

	assert.Equal(t, "fake", d.String())

	require.Nil(t, d.SetWindow(0, 0, 3, 2))
	require.Nil(t, d.PushPixels(pixels(1, 2, 3, 4, 5, 6)))

	require.Nil(t, d.SetWindow(2, 3, 4, 1))
	require.Nil(t, d.PushPixels(pixels(7, 8, 9, 10)))

	assert.Equal(t, []draw{
		{image.Rect(0, 0, 3, 1), []rgb565.Color{1, 2, 3}},
		{image.Rect(0, 1, 3, 2), []rgb565.Color{4, 5, 6}},
		{image.Rect(2, 3, 4, 4), []rgb565.Color{7, 8}},
	}, fd.draws)

	require.Nil(t, d.Halt())
	assert.True(t, fd.halted)
}
