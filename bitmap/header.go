package bitmap

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Header holds the geometry and pixel encoding of a bitmap. It is never
// modified once read.
type Header struct {
	DataOffset   uint32
	Width        int32
	Height       int32
	BitsPerPixel uint16
	// DataSize is informational only; reads are not bounded by it.
	DataSize uint32
	// Colors is the palette color count. Indexed bitmaps are not
	// supported so this is informational only.
	Colors uint32
}

// Stride returns the stored row length in bytes for h.
func (h Header) Stride() int {
	return Stride(int(h.Width), int(h.BitsPerPixel))
}

// Empty reports whether h describes an image with no pixels.
func (h Header) Empty() bool {
	return h.Width <= 0 || h.Height <= 0
}

// ReadHeader reads the bitmap header fields from their fixed offsets in r.
// Either every field is read or an error is returned.
func ReadHeader(r io.ReaderAt) (Header, error) {
	// Reading at an offset past the end of r may fail with any error, so
	// read the whole header in one go from the start and decode it
	b := make([]byte, headerLength)
	if _, err := io.ReadFull(io.NewSectionReader(r, 0, headerLength), b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, fmt.Errorf("%w: %w", ErrShortHeader, io.ErrUnexpectedEOF)
		}
		return Header{}, err
	}

	return Header{
		DataOffset:   binary.LittleEndian.Uint32(b[offsetDataOffset:]),
		Width:        int32(binary.LittleEndian.Uint32(b[offsetWidth:])),
		Height:       int32(binary.LittleEndian.Uint32(b[offsetHeight:])),
		BitsPerPixel: binary.LittleEndian.Uint16(b[offsetBitsPerPixel:]),
		DataSize:     binary.LittleEndian.Uint32(b[offsetDataSize:]),
		Colors:       binary.LittleEndian.Uint32(b[offsetColors:]),
	}, nil
}
