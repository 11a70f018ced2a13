// panoconv converts single panoramas between equirectangular, cube map and
// perspective form.
//
// Usage:
//
//	panoconv e2c [options] equirect.jpg cube.png
//	panoconv c2e [options] cube.png equirect.jpg
//	panoconv e2p [options] equirect.jpg view.jpg
//
// Six-file I/O:
//
//	If a cube file name contains a '%' character, panoconv reads or writes
//	six separate face images. The '%' is replaced with F, R, B, L, U and D.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"panostills/internal/frames"
	"panostills/internal/projection"
	"panostills/internal/sink"
	"panostills/internal/stills"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "panoconv: %v\n", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: panoconv e2c|c2e|e2p [options] infile outfile")
	fmt.Fprintln(w, "run 'panoconv <command> -h' for the options of a command")
}

func run(args []string, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return flag.ErrHelp
	}
	switch args[0] {
	case "e2c":
		return runE2C(args[1:], stderr)
	case "c2e":
		return runC2E(args[1:], stderr)
	case "e2p":
		return runE2P(args[1:], stderr)
	case "-h", "-help", "--help", "help":
		usage(stderr)
		return flag.ErrHelp
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// common holds the options every command shares.
type common struct {
	mode    string
	quality int
	verbose bool
}

func newFlagSet(name string, stderr io.Writer, c *common) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.mode, "mode", "bilinear", "interpolation: bilinear or nearest")
	fs.IntVar(&c.quality, "quality", sink.DefaultQuality, "JPEG quality 1-100")
	fs.BoolVar(&c.verbose, "v", false, "verbose output")
	return fs
}

// parse parses the flags and returns the mode plus the two file arguments.
func parse(fs *flag.FlagSet, c *common, args []string) (projection.Mode, string, string, error) {
	if err := fs.Parse(args); err != nil {
		return 0, "", "", err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 0, "", "", fmt.Errorf("%s: need an input and an output file", fs.Name())
	}
	if c.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	mode, err := projection.ParseMode(c.mode)
	if err != nil {
		return 0, "", "", err
	}
	return mode, fs.Arg(0), fs.Arg(1), nil
}

func runE2C(args []string, stderr io.Writer) error {
	var c common
	fs := newFlagSet("e2c", stderr, &c)
	faceW := fs.Int("face-width", 0, "face width in pixels (default: a quarter of the input width)")
	overlap := fs.Float64("overlap", 0, "face overlap as a fraction of the face width")
	layout := fs.String("layout", "dice", "output layout: dice, horizon or list (implied by a '%' in outfile)")
	orientation := fs.String("orientation", "", "mirror faces for stitching: inside-out or native (list output only)")
	mode, in, out, err := parse(fs, &c, args)
	if err != nil {
		return err
	}

	l, err := projection.ParseLayout(*layout)
	if err != nil {
		return err
	}
	if strings.Contains(out, "%") {
		l = projection.LayoutList
	}
	if (l == projection.LayoutList || l == projection.LayoutDict) && !strings.Contains(out, "%") {
		return fmt.Errorf("e2c: list output needs a '%%' in %s", out)
	}

	img, err := frames.Load(in)
	if err != nil {
		return err
	}
	fw := *faceW
	if fw == 0 {
		fw = stills.FaceWidth(img.W, *overlap)
	}
	log.Debug().Str("in", in).Int("width", img.W).Int("height", img.H).Int("face_width", fw).Msg("e2c")

	if *orientation != "" {
		if l != projection.LayoutList {
			return errors.New("e2c: -orientation needs list output")
		}
		o, err := stills.ParseOrientation(*orientation)
		if err != nil {
			return err
		}
		faces, err := stills.Reproject(img, stills.Options{FaceWidth: fw, Mode: mode, Overlap: *overlap, Orientation: o})
		if err != nil {
			return err
		}
		return writeFaces(out, faces, c.quality)
	}

	cube, err := projection.EquirectToCube(img, fw, mode, *overlap, l)
	if err != nil {
		return err
	}
	if l == projection.LayoutList {
		return writeFaces(out, cube.Faces, c.quality)
	}
	return writeImage(out, cube.Image, c.quality)
}

func runC2E(args []string, stderr io.Writer) error {
	var c common
	fs := newFlagSet("c2e", stderr, &c)
	width := fs.Int("width", 0, "output width, a multiple of 8 (default: four face widths)")
	height := fs.Int("height", 0, "output height (default: half the width)")
	layout := fs.String("layout", "", "input layout: dice or horizon (default: from the aspect ratio)")
	mode, in, out, err := parse(fs, &c, args)
	if err != nil {
		return err
	}

	var cube projection.CubeMap
	if strings.Contains(in, "%") {
		faces, err := readFaces(in)
		if err != nil {
			return err
		}
		cube = projection.CubeMap{Layout: projection.LayoutList, Faces: faces}
	} else {
		img, err := frames.Load(in)
		if err != nil {
			return err
		}
		l, err := inputLayout(*layout, img)
		if err != nil {
			return err
		}
		cube = projection.CubeMap{Layout: l, Image: img}
	}

	strip, err := cube.Horizon()
	if err != nil {
		return err
	}
	w := *width
	if w == 0 {
		w = 4 * strip.H
		w -= w % 8
	}
	h := *height
	if h == 0 {
		h = w / 2
	}
	log.Debug().Str("in", in).Int("face_width", strip.H).Int("width", w).Int("height", h).Msg("c2e")

	eq, err := projection.CubeToEquirect(cube, h, w, mode)
	if err != nil {
		return err
	}
	return writeImage(out, eq, c.quality)
}

func runE2P(args []string, stderr io.Writer) error {
	var c common
	fs := newFlagSet("e2p", stderr, &c)
	var p projection.Perspective
	fs.Float64Var(&p.HFOV, "hfov", 90, "horizontal field of view in degrees")
	fs.Float64Var(&p.VFOV, "vfov", 0, "vertical field of view in degrees (default: same as -hfov)")
	fs.Float64Var(&p.Heading, "heading", 0, "view heading in degrees, positive turns right")
	fs.Float64Var(&p.Pitch, "pitch", 0, "view pitch in degrees, positive looks up")
	fs.Float64Var(&p.Roll, "roll", 0, "in-plane rotation in degrees")
	fs.IntVar(&p.Width, "width", 1024, "output width in pixels")
	fs.IntVar(&p.Height, "height", 0, "output height in pixels (default: same as -width)")
	mode, in, out, err := parse(fs, &c, args)
	if err != nil {
		return err
	}
	if p.VFOV == 0 {
		p.VFOV = p.HFOV
	}
	if p.Height == 0 {
		p.Height = p.Width
	}

	img, err := frames.Load(in)
	if err != nil {
		return err
	}
	log.Debug().Str("in", in).Float64("heading", p.Heading).Float64("pitch", p.Pitch).Msg("e2p")

	view, err := projection.EquirectToPerspective(img, p, mode)
	if err != nil {
		return err
	}
	return writeImage(out, view, c.quality)
}

// inputLayout resolves the layout of a single cube image.
func inputLayout(name string, img *projection.Image) (projection.Layout, error) {
	if name != "" {
		l, err := projection.ParseLayout(name)
		if err != nil {
			return 0, err
		}
		if l != projection.LayoutDice && l != projection.LayoutHorizon {
			return 0, fmt.Errorf("c2e: a single input image cannot hold layout %v", l)
		}
		return l, nil
	}
	switch {
	case img.W == img.H*projection.NumFaces:
		return projection.LayoutHorizon, nil
	case img.W*3 == img.H*4:
		return projection.LayoutDice, nil
	default:
		return 0, fmt.Errorf("c2e: cannot tell the layout of a %dx%d image, use -layout", img.W, img.H)
	}
}

// faceFiles expands the '%' of a six-file name to one name per face.
func faceFiles(pattern string) []string {
	names := make([]string, projection.NumFaces)
	for i, f := range projection.Faces {
		names[i] = strings.Replace(pattern, "%", f.String(), 1)
	}
	return names
}

func readFaces(pattern string) ([]*projection.Image, error) {
	faces := make([]*projection.Image, projection.NumFaces)
	for i, path := range faceFiles(pattern) {
		log.Debug().Str("face", projection.Face(i).String()).Str("path", path).Msg("reading face")
		img, err := frames.Load(path)
		if err != nil {
			return nil, fmt.Errorf("face %v: %w", projection.Face(i), err)
		}
		faces[i] = img
	}
	return faces, nil
}

func writeFaces(pattern string, faces []*projection.Image, quality int) error {
	for i, path := range faceFiles(pattern) {
		if err := writeImage(path, faces[i], quality); err != nil {
			return fmt.Errorf("face %v: %w", projection.Face(i), err)
		}
	}
	return nil
}

func writeImage(path string, img *projection.Image, quality int) error {
	format, err := sink.ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sink.Encode(f, img, format, sink.Options{Quality: quality}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("width", img.W).Int("height", img.H).Msg("written")
	return f.Close()
}
