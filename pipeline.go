package mirror

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/bodgit/mirror/bitmap"
)

const scanWorkers = 10

func iconName(file string) string {
	return strings.TrimSuffix(path.Base(file), path.Ext(file))
}

func sha1File(fsys fs.FS, file string) (string, error) {
	f, err := fsys.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (m *Mirror) readIcon(file string) (*Icon, error) {
	f, err := bitmap.Open(m.fsys, file)
	if err != nil {
		return nil, err
	}

	sha, err := sha1File(m.fsys, file)
	if err != nil {
		return nil, err
	}

	h := f.Header()

	return &Icon{
		Name:         iconName(file),
		Path:         file,
		SHA1:         sha,
		Width:        int(h.Width),
		Height:       int(h.Height),
		BitsPerPixel: int(h.BitsPerPixel),
	}, nil
}

func (m *Mirror) findBitmaps(ctx context.Context) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- fs.WalkDir(m.fsys, ".", func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, the card is often
			// littered with them by whatever machine last wrote to it
			if file != "." && d.Name()[0] == '.' {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal bitmap file
			if !d.Type().IsRegular() || !strings.EqualFold(path.Ext(file), ".bmp") {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (m *Mirror) iconWorker(ctx context.Context, in <-chan string) (<-chan Icon, <-chan error, error) {
	out := make(chan Icon)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for file := range in {
			// One unreadable icon shouldn't stop the rest of the card
			// being scanned
			icon, err := m.readIcon(file)
			if err != nil {
				m.logger.Printf("Skipping \"%s\": %v\n", file, err)
				continue
			}

			if !bitmap.Supported(icon.BitsPerPixel) {
				m.logger.Printf("Skipping \"%s\": unsupported depth of %d bits per pixel\n", file, icon.BitsPerPixel)
				continue
			}

			select {
			case out <- *icon:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errc, nil
}

func (m *Mirror) iconWriter(in <-chan Icon, seen map[string]struct{}) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for icon := range in {
			if _, ok := seen[icon.Name]; ok {
				m.logger.Printf("Icon \"%s\" replaced by \"%s\"\n", icon.Name, icon.Path)
			}
			seen[icon.Name] = struct{}{}

			if err := m.db.AddIcon(icon); err != nil {
				errc <- err
				return
			}
			m.logger.Printf("Added \"%s\" from \"%s\", %dx%d at %d bits per pixel\n", icon.Name, icon.Path, icon.Width, icon.Height, icon.BitsPerPixel)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func mergeIcons(ctx context.Context, cs ...<-chan Icon) <-chan Icon {
	var wg sync.WaitGroup
	out := make(chan Icon)
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan Icon) {
			defer wg.Done()
			for icon := range c {
				select {
				case out <- icon:
				case <-ctx.Done():
					return
				}
			}
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the icon filesystem and adds every bitmap found to the
// catalogue. Icons in the catalogue that were not found are removed once the
// scan completes successfully.
func (m *Mirror) Scan(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := m.findBitmaps(ctx)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	var icons []<-chan Icon
	for i := 0; i < scanWorkers; i++ {
		out, errc, err := m.iconWorker(ctx, files)
		if err != nil {
			return err
		}
		icons = append(icons, out)
		errcList = append(errcList, errc)
	}

	seen := make(map[string]struct{})
	errc, err = m.iconWriter(mergeIcons(ctx, icons...), seen)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	if err := waitForPipeline(errcList...); err != nil {
		return err
	}

	// Workers drop icons silently once cancelled
	if err := ctx.Err(); err != nil {
		return err
	}

	return m.prune(seen)
}

func (m *Mirror) prune(seen map[string]struct{}) error {
	icons, err := m.db.Icons()
	if err != nil {
		return err
	}

	for _, icon := range icons {
		if _, ok := seen[icon.Name]; ok {
			continue
		}
		if err := m.db.RemoveIcon(icon.Name); err != nil {
			return err
		}
		m.logger.Printf("Removed \"%s\", \"%s\" no longer exists\n", icon.Name, icon.Path)
	}

	return nil
}
