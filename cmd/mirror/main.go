package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/bodgit/mirror"
	"github.com/bodgit/mirror/bitmap"
	"github.com/bodgit/mirror/display"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
)

const defaultDB = "mirror.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newMirror(c *cli.Context) (*mirror.Mirror, *mirror.IconDB, error) {
	db, err := mirror.NewIconDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}
	return mirror.New(db, os.DirFS(c.String("icons")), newLogger(c)), db, nil
}

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return err
	}

	return f.Close()
}

func drawAction(c *cli.Context) error {
	if c.NArg() < 1 && c.String("icon") == "" {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)
	fb := display.NewFramebuffer(c.Int("width"), c.Int("height"))

	var stats bitmap.Stats
	if name := c.String("icon"); name != "" {
		m, db, err := newMirror(c)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer db.Close()

		if stats, err = m.DrawIcon(fb, name); err != nil {
			return cli.Exit(err, 1)
		}
	} else {
		f, err := bitmap.OpenFile(c.Args().First())
		if err != nil {
			return cli.Exit(err, 1)
		}

		x, y := c.Int("x"), c.Int("y")
		if c.Bool("centre") {
			x, y = bitmap.Centre(fb, f.Header())
		}

		if stats, err = f.Draw(fb, x, y); err != nil {
			return cli.Exit(err, 1)
		}
	}

	if stats.Degraded() {
		logger.Printf("Bitmap only partly drawn, %s, %d short, unsupported depth %t\n", stats, stats.Short, stats.Unsupported)
	}

	if err := writePNG(c.String("output"), fb.Image()); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "mirror"
	app.Usage = "Smart mirror icon management utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MIRROR_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.StringFlag{
			Name:    "icons",
			EnvVars: []string{"MIRROR_ICONS"},
			Value:   cwd,
			Usage:   "directory holding the icon bitmaps",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "scan",
			Usage:       "Scan icon directory and update the database",
			Description: "",
			Action: func(c *cli.Context) error {
				m, db, err := newMirror(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := m.Scan(context.Background()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List icons in the database",
			Description: "",
			Action: func(c *cli.Context) error {
				db, err := mirror.NewIconDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				icons, err := db.Icons()
				if err != nil {
					return cli.Exit(err, 1)
				}

				w := tabwriter.NewWriter(c.App.Writer, 0, 8, 1, ' ', 0)
				for _, icon := range icons {
					fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\n", icon.Name, icon.Width, icon.Height, icon.BitsPerPixel, icon.Path)
				}

				return w.Flush()
			},
		},
		{
			Name:        "info",
			Usage:       "Print bitmap header",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := bitmap.OpenFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}
				h := f.Header()

				w := tabwriter.NewWriter(c.App.Writer, 0, 8, 1, ' ', 0)
				fmt.Fprintf(w, "Data offset:\t%d\n", h.DataOffset)
				fmt.Fprintf(w, "Width:\t%d\n", h.Width)
				fmt.Fprintf(w, "Height:\t%d\n", h.Height)
				fmt.Fprintf(w, "Bits per pixel:\t%d\n", h.BitsPerPixel)
				fmt.Fprintf(w, "Data size:\t%d\n", h.DataSize)
				fmt.Fprintf(w, "Colors:\t%d\n", h.Colors)
				fmt.Fprintf(w, "Stride:\t%d\n", h.Stride())
				fmt.Fprintf(w, "Supported:\t%t\n", bitmap.Supported(int(h.BitsPerPixel)))

				return w.Flush()
			},
		},
		{
			Name:        "draw",
			Usage:       "Draw a bitmap onto a simulated display and save it as PNG",
			Description: "",
			ArgsUsage:   "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "icon",
					Usage: "draw the named icon from the database instead of FILE",
				},
				&cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "display width",
				},
				&cli.IntFlag{
					Name:  "height",
					Value: 480,
					Usage: "display height",
				},
				&cli.IntFlag{
					Name:  "x",
					Usage: "left edge of the bitmap",
				},
				&cli.IntFlag{
					Name:  "y",
					Usage: "top edge of the bitmap",
				},
				&cli.BoolFlag{
					Name:  "centre",
					Usage: "centre the bitmap, ignoring --x and --y",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "display.png",
					Usage:   "PNG file to write",
				},
			},
			Action: drawAction,
		},
		{
			Name:        "prepare",
			Usage:       "Convert an image into a bitmap for the mirror",
			Description: "Reads a PNG, JPEG, GIF or BMP image and writes an uncompressed bitmap.",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "bpp",
					Value: 24,
					Usage: "bits per pixel, one of 16, 24 or 32",
				},
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce to at most this many colors",
				},
				&cli.IntFlag{
					Name:  "width",
					Usage: "scale to fit this width, needs --height",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "scale to fit this height, needs --width",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				in, err := os.Open(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer in.Close()

				m, _, err := image.Decode(in)
				if err != nil {
					return cli.Exit(err, 1)
				}

				out, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer out.Close()

				if err := mirror.PrepareIcon(out, m, mirror.PrepareOptions{
					BitsPerPixel: c.Int("bpp"),
					Colors:       c.Int("colors"),
					Width:        c.Int("width"),
					Height:       c.Int("height"),
				}); err != nil {
					return cli.Exit(err, 1)
				}

				if err := out.Close(); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
