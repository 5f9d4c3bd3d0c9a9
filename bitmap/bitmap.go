/*
Package bitmap implements a minimal Windows bitmap reader that streams pixels
to a 16-bit display, plus an encoder for preparing such bitmaps.

Only the handful of header fields needed to locate and interpret the pixel
data are read, each from a fixed offset:

	offset  size  field
	    10     4  pixel data offset
	    18     4  width
	    22     4  height
	    28     2  bits per pixel
	    34     4  pixel data size
	    46     4  palette color count

All fields are little-endian. Rows are stored bottom-up and each row is padded
to a multiple of four bytes. Pixels of 16 bits are stored as 1-5-5-5, pixels
of 24 and 32 bits as blue, green, red and an ignored fourth byte.
*/
package bitmap

import "errors"

const (
	offsetDataOffset   = 10
	offsetWidth        = 18
	offsetHeight       = 22
	offsetBitsPerPixel = 28
	offsetDataSize     = 34
	offsetColors       = 46
	headerLength       = offsetColors + 4

	fileHeaderSize = 14
	infoHeaderSize = 40
	pixelOffset    = fileHeaderSize + infoHeaderSize
)

var (
	// ErrShortHeader is returned when the source ends before the last
	// header field.
	ErrShortHeader = errors.New("bitmap: not enough header data")
	// ErrNotRandomAccess is returned when the opened file cannot be read at
	// arbitrary offsets.
	ErrNotRandomAccess = errors.New("bitmap: file does not support random access")
	// ErrUnsupportedDepth is returned by Encode for a bit depth other than
	// 16, 24 or 32.
	ErrUnsupportedDepth = errors.New("bitmap: unsupported bit depth")
	// ErrEmptyImage is returned by Encode for an image with no pixels.
	ErrEmptyImage = errors.New("bitmap: image is empty")
)

// Supported reports whether pixels of the given depth can be converted.
func Supported(bitsPerPixel int) bool {
	switch bitsPerPixel {
	case 16, 24, 32:
		return true
	}
	return false
}

// Stride returns the number of bytes occupied by one stored row, including the
// padding that aligns each row to four bytes.
func Stride(width, bitsPerPixel int) int {
	n := width * (bitsPerPixel / 8)
	if mod := n % 4; mod != 0 {
		n += 4 - mod
	}
	return n
}
