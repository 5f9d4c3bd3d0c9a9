package rgb565

import (
	"image"
	"image/color"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestFrom555(t *testing.T) {
	tables := []struct {
		raw  uint16
		want Color
	}{
		{0x0000, 0x0020},
		{0xffff, 0xffff},
		{0x7fe0, 0xffe0},
		{0x001f, 0x003f},
		{0x7c00, 0xf820}, // red
		{0x03e0, 0x07e0}, // green
	}

	for _, table := range tables {
		assert.Equal(t, table.want, From555(table.raw), "raw %#04x", table.raw)
	}
}

func TestFrom555Exhaustive(t *testing.T) {
	for i := 0; i <= 0xffff; i++ {
		raw := uint16(i)
		want := Color((raw&0x7fe0)<<1 | 0x20 | raw&0x001f)
		if got := From555(raw); got != want {
			t.Fatalf("From555(%#04x) = %#04x, want %#04x", raw, got, want)
		}
		if back := To555(From555(raw)); back != raw&0x7fff {
			t.Fatalf("To555(From555(%#04x)) = %#04x", raw, back)
		}
	}
}

func TestPack(t *testing.T) {
	tables := []struct {
		r, g, b uint8
		want    Color
	}{
		{0x00, 0x00, 0x00, 0x0000},
		{0xff, 0xff, 0xff, 0xffff},
		{0xff, 0x00, 0x00, 0xf800},
		{0x00, 0xff, 0x00, 0x07e0},
		{0x00, 0x00, 0xff, 0x001f},
		{0x07, 0x03, 0x07, 0x0000},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, Pack(table.r, table.g, table.b))
	}
}

func TestPackProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("components survive a pack", prop.ForAll(
		func(r, g, b uint8) bool {
			cr, cg, cb := Pack(r, g, b).Components()
			return cr == r>>3 && cg == g>>2 && cb == b>>3
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(),
	))

	properties.Property("red and blue are not interchangeable", prop.ForAll(
		func(r, g, b uint8) bool {
			if r&0xf8 == b&0xf8 {
				return Pack(r, g, b) == Pack(b, g, r)
			}
			return Pack(r, g, b) != Pack(b, g, r)
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(),
	))

	properties.Property("model is idempotent", prop.ForAll(
		func(v uint16) bool {
			c := Color(v)
			return Model.Convert(c) == c && Model.Convert(color.RGBA64Model.Convert(c)) == c
		},
		gen.UInt16(),
	))

	properties.TestingRun(t)
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color(0xffff).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})

	r, g, b, a = Color(0).RGBA()
	assert.Equal(t, []uint32{0, 0, 0, 0xffff}, []uint32{r, g, b, a})

	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, RGBAOf(0xf800))
	assert.Equal(t, []byte{0x01, 0x07, 0xe0}, Color(0x07e0).AppendBytes([]byte{0x01}))
}

func TestImage(t *testing.T) {
	m := NewImage(image.Rect(1, 1, 4, 3))

	assert.Equal(t, 6, m.Stride)
	assert.Len(t, m.Pix, 12)
	assert.True(t, m.Opaque())

	m.SetRGB565(1, 1, 0xf800)
	m.Set(3, 2, color.RGBA{0, 0, 0xff, 0xff})
	m.SetRGB565(10, 10, 0xffff) // ignored

	assert.Equal(t, Color(0xf800), m.RGB565At(1, 1))
	assert.Equal(t, Color(0x001f), m.At(3, 2))
	assert.Equal(t, Color(0), m.RGB565At(0, 0))
	assert.Equal(t, []uint8{0xf8, 0x00}, m.Pix[0:2])
	assert.Equal(t, []uint8{0x00, 0x1f}, m.Pix[10:12])

	m.Fill(0x1234)
	for y := 1; y < 3; y++ {
		for x := 1; x < 4; x++ {
			assert.Equal(t, Color(0x1234), m.RGB565At(x, y))
		}
	}
}
