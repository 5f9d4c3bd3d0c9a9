/*
Package mirror drives the bitmap side of a smart mirror: a catalogue of
weather icons stored as bitmaps on the appliance's card, and drawing those
icons onto the display.
*/
package mirror

import (
	"errors"
	"io/fs"
	"log"
)

// ErrUnknownIcon is returned when an icon is not in the catalogue.
var ErrUnknownIcon = errors.New("mirror: unknown icon")

// Mirror ties the icon catalogue to the filesystem holding the icons.
type Mirror struct {
	db     *IconDB
	fsys   fs.FS
	logger *log.Logger
}

// New returns a Mirror using db to find icons stored in fsys.
func New(db *IconDB, fsys fs.FS, logger *log.Logger) *Mirror {
	return &Mirror{
		db:     db,
		fsys:   fsys,
		logger: logger,
	}
}
