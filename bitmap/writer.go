package bitmap

import (
	"encoding/binary"
	"image"
	"io"

	"github.com/bodgit/mirror/rgb565"
)

const (
	offsetFileSize    = 2
	offsetInfoSize    = fileHeaderSize
	offsetPlanes      = 26
	offsetXResolution = 38
	offsetYResolution = 42

	// 72 DPI
	pixelsPerMetre = 2835
)

type encoder struct {
	w   io.Writer
	bpp int
}

func (e *encoder) writeHeader(width, height int) error {
	size := Stride(width, e.bpp) * height

	var b [pixelOffset]byte
	b[0], b[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(b[offsetFileSize:], uint32(pixelOffset+size))
	binary.LittleEndian.PutUint32(b[offsetDataOffset:], pixelOffset)
	binary.LittleEndian.PutUint32(b[offsetInfoSize:], infoHeaderSize)
	binary.LittleEndian.PutUint32(b[offsetWidth:], uint32(width))
	binary.LittleEndian.PutUint32(b[offsetHeight:], uint32(height))
	binary.LittleEndian.PutUint16(b[offsetPlanes:], 1)
	binary.LittleEndian.PutUint16(b[offsetBitsPerPixel:], uint16(e.bpp))
	// Compression is left as zero, uncompressed RGB
	binary.LittleEndian.PutUint32(b[offsetDataSize:], uint32(size))
	binary.LittleEndian.PutUint32(b[offsetXResolution:], pixelsPerMetre)
	binary.LittleEndian.PutUint32(b[offsetYResolution:], pixelsPerMetre)

	_, err := e.w.Write(b[:])
	return err
}

func (e *encoder) encode(m image.Image) error {
	r := m.Bounds()

	if err := e.writeHeader(r.Dx(), r.Dy()); err != nil {
		return err
	}

	// Padding bytes stay zero as only the pixel bytes are overwritten
	row := make([]byte, Stride(r.Dx(), e.bpp))
	step := e.bpp / 8

	// Bottom row first
	for y := r.Max.Y - 1; y >= r.Min.Y; y-- {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := (x - r.Min.X) * step
			c := m.At(x, y)
			cr, cg, cb, _ := c.RGBA()
			switch e.bpp {
			case 16:
				// X1R5G5B5
				binary.LittleEndian.PutUint16(row[i:], rgb565.To555(rgb565.Model.Convert(c).(rgb565.Color)))
			case 24:
				row[i], row[i+1], row[i+2] = byte(cb>>8), byte(cg>>8), byte(cr>>8)
			case 32:
				row[i], row[i+1], row[i+2], row[i+3] = byte(cb>>8), byte(cg>>8), byte(cr>>8), 0xff
			}
		}
		if _, err := e.w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes the Image m to w as an uncompressed bitmap with the given
// number of bits per pixel, which must be 16, 24 or 32.
func Encode(w io.Writer, m image.Image, bitsPerPixel int) error {
	if !Supported(bitsPerPixel) {
		return ErrUnsupportedDepth
	}
	if m.Bounds().Empty() {
		return ErrEmptyImage
	}

	e := encoder{w: w, bpp: bitsPerPixel}

	return e.encode(m)
}
