package bitmap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/bodgit/mirror/rgb565"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(width, height int) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetRGBA(x, y, color.RGBA{uint8(x * 40), uint8(y * 60), uint8(x*y*10 + 5), 0xff})
		}
	}
	return m
}

func TestEncodeHeader(t *testing.T) {
	for _, bpp := range []int{16, 24, 32} {
		b := new(bytes.Buffer)
		require.Nil(t, Encode(b, testImage(5, 3), bpp))

		h, err := ReadHeader(bytes.NewReader(b.Bytes()))
		require.Nil(t, err)

		assert.Equal(t, Header{
			DataOffset:   pixelOffset,
			Width:        5,
			Height:       3,
			BitsPerPixel: uint16(bpp),
			DataSize:     uint32(Stride(5, bpp) * 3),
		}, h)
		assert.Equal(t, pixelOffset+Stride(5, bpp)*3, b.Len())
		assert.Equal(t, []byte("BM"), b.Bytes()[:2])
	}
}

func TestEncodeDecode(t *testing.T) {
	// The 16-bit form has no decoder in x/image/bmp
	for _, bpp := range []int{24, 32} {
		m := testImage(7, 4)

		b := new(bytes.Buffer)
		require.Nil(t, Encode(b, m, bpp))

		d, err := bmp.Decode(b)
		require.Nil(t, err, "bpp %d", bpp)
		require.Equal(t, m.Bounds(), d.Bounds())

		for y := 0; y < 4; y++ {
			for x := 0; x < 7; x++ {
				assert.Equal(t, m.At(x, y), color.RGBAModel.Convert(d.At(x, y)), "bpp %d at %d,%d", bpp, x, y)
			}
		}
	}
}

func TestEncodeDraw(t *testing.T) {
	m := testImage(3, 2)

	for _, bpp := range []int{16, 24, 32} {
		b := new(bytes.Buffer)
		require.Nil(t, Encode(b, m, bpp))

		f, err := Open(fstest.MapFS{"icon.bmp": {Data: b.Bytes()}}, "icon.bmp")
		require.Nil(t, err)

		s := newRecorder(320, 240)
		stats, err := f.Draw(s, 0, 0)
		require.Nil(t, err)
		assert.False(t, stats.Degraded())
		require.Len(t, s.pushes, 2)

		// First push is the bottom row of the image
		for i, y := range []int{1, 0} {
			var want []byte
			for x := 0; x < 3; x++ {
				c := m.RGBAAt(x, y)
				p := rgb565.Pack(c.R, c.G, c.B)
				if bpp == 16 {
					p = rgb565.From555(rgb565.To555(p))
				}
				want = p.AppendBytes(want)
			}
			assert.Equal(t, want, s.pushes[i], "bpp %d row %d", bpp, y)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	b := new(bytes.Buffer)

	assert.Equal(t, ErrUnsupportedDepth, Encode(b, testImage(1, 1), 8))
	assert.Equal(t, ErrEmptyImage, Encode(b, image.NewRGBA(image.Rect(0, 0, 0, 4)), 24))
	assert.Equal(t, 0, b.Len())

	e := errors.New("disk full")
	assert.Equal(t, e, Encode(failWriter{e}, testImage(1, 1), 24))
}

type failWriter struct {
	err error
}

func (w failWriter) Write([]byte) (int, error) {
	return 0, w.err
}
