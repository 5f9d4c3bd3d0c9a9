package bitmap

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bodgit/mirror/rgb565"
)

// Surface is a display that accepts pixels through a write window. Pixels
// pushed with PushPixels are big-endian RGB565 and fill the window row by
// row starting at the cursor.
type Surface interface {
	Size() (width, height int)
	SetWindow(x, y, width, height int) error
	SetCursor(x, y int) error
	PushPixels(p []byte) error
}

// Stats describes how much of a bitmap was converted by Draw. Bitmaps with an
// unsupported bit depth or truncated pixel data are still drawn as far as
// possible rather than failing.
type Stats struct {
	// Rows is the number of rows walked.
	Rows int
	// Converted is the number of rows that produced at least one pixel.
	Converted int
	// Short is the number of rows read from a truncated file.
	Short int
	// Unsupported is set when the bit depth cannot be converted.
	Unsupported bool
}

// Degraded reports whether any part of the bitmap could not be drawn.
func (s Stats) Degraded() bool {
	return s.Unsupported || s.Short > 0 || s.Converted < s.Rows
}

func (s Stats) String() string {
	return fmt.Sprintf("%d of %d rows converted", s.Converted, s.Rows)
}

// convertRow appends the RGB565 form of each whole pixel in src to dst.
func convertRow(dst, src []byte, bitsPerPixel int) []byte {
	if !Supported(bitsPerPixel) {
		return dst
	}
	step := bitsPerPixel / 8
	for i := 0; len(src)-i >= step; i += step {
		var c rgb565.Color
		if bitsPerPixel == 16 {
			c = rgb565.From555(binary.LittleEndian.Uint16(src[i:]))
		} else {
			c = rgb565.Pack(src[i+2], src[i+1], src[i])
		}
		dst = c.AppendBytes(dst)
	}
	return dst
}

// Draw streams the bitmap onto s with its top-left corner at (x, y). The
// placement is not validated against the size of s. Whatever happens, the
// write window of s is reset to the whole surface before Draw returns.
//
// Only the first width pixels of each row are drawn. Row padding is never
// converted, even where it is wide enough to hold a whole pixel, which
// older readers of the format would draw as one extra pixel.
//
// Only errors opening or reading the file, or writing to s, are returned.
func (f *File) Draw(s Surface, x, y int) (stats Stats, err error) {
	if err = f.readHeader(); err != nil {
		return
	}

	sw, sh := s.Size()
	defer func() {
		if werr := s.SetWindow(0, 0, sw, sh); err == nil {
			err = werr
		}
	}()

	h := f.header
	bpp := int(h.BitsPerPixel)
	stats.Unsupported = !Supported(bpp)

	if h.Empty() {
		return
	}

	file, ra, err := f.open()
	if err != nil {
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return
	}

	// Never read beyond the end of the file, whatever the header claims
	avail := info.Size() - int64(h.DataOffset)
	if avail < 0 {
		avail = 0
	}
	r := io.NewSectionReader(ra, int64(h.DataOffset), avail)

	width, height := int(h.Width), int(h.Height)
	if err = s.SetWindow(x, y, width, height); err != nil {
		return
	}

	stride := h.Stride()

	var row, out []byte
	pixels := width * (bpp / 8)
	if !stats.Unsupported {
		// A corrupt width cannot size the buffers beyond the pixel data
		// actually present
		n := int64(stride)
		if n > avail {
			n = avail
		}
		row = make([]byte, n)
		if pixels > len(row) {
			pixels = len(row)
		}
		out = make([]byte, 0, pixels/(bpp/8)*2)
	}

	for line := 0; line < height; line++ {
		var n int
		var rerr error
		if stats.Unsupported {
			var skipped int64
			skipped, rerr = io.CopyN(io.Discard, r, int64(stride))
			n = int(skipped)
		} else {
			n, rerr = io.ReadFull(r, row)
		}
		switch rerr {
		case nil, io.EOF, io.ErrUnexpectedEOF:
			if n < stride {
				stats.Short++
			}
		default:
			return stats, rerr
		}

		// Only whole pixels within the image width, never the padding
		if n > pixels {
			n = pixels
		}
		if !stats.Unsupported {
			out = convertRow(out[:0], row[:n], bpp)
		}

		stats.Rows++
		if len(out) > 0 {
			stats.Converted++
		}

		// Rows are stored bottom-up
		if err = s.SetCursor(x, height-line+y); err != nil {
			return
		}
		if err = s.PushPixels(out); err != nil {
			return
		}
	}

	return
}

// Centre returns the origin that places a bitmap with header h in the middle
// of s. Bitmaps larger than s are pinned to the top-left corner.
func Centre(s Surface, h Header) (x, y int) {
	sw, sh := s.Size()
	if x = (sw - int(h.Width)) / 2; x < 0 {
		x = 0
	}
	if y = (sh - int(h.Height)) / 2; y < 0 {
		y = 0
	}
	return
}
