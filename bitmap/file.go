package bitmap

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a bitmap bound to a name within a filesystem. The header is read
// once when the File is opened; each call to Draw reopens the file and reads
// the pixel data again.
type File struct {
	fsys fs.FS
	name string

	header Header
	loaded bool
}

// Open reads the header of the named bitmap in fsys. The file must support
// io.ReaderAt, which is true of os.DirFS and testing/fstest.MapFS.
func Open(fsys fs.FS, name string) (*File, error) {
	f := &File{
		fsys: fsys,
		name: name,
	}
	if err := f.readHeader(); err != nil {
		return nil, err
	}
	return f, nil
}

// OpenFile is like Open but takes a path on the host filesystem.
func OpenFile(path string) (*File, error) {
	return Open(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// Name returns the name the File was opened with.
func (f *File) Name() string {
	return f.name
}

// Header returns the header read when the File was opened.
func (f *File) Header() Header {
	return f.header
}

func (f *File) open() (fs.File, io.ReaderAt, error) {
	file, err := f.fsys.Open(f.name)
	if err != nil {
		return nil, nil, err
	}
	ra, ok := file.(io.ReaderAt)
	if !ok {
		file.Close()
		return nil, nil, &fs.PathError{Op: "open", Path: f.name, Err: ErrNotRandomAccess}
	}
	return file, ra, nil
}

func (f *File) readHeader() error {
	if f.loaded {
		return nil
	}

	file, r, err := f.open()
	if err != nil {
		return err
	}
	defer file.Close()

	h, err := ReadHeader(r)
	if err != nil {
		return err
	}

	f.header, f.loaded = h, true
	return nil
}
