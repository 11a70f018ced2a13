package sink

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"panostills/internal/projection"
)

// DefaultQuality is the JPEG quality used when Options.Quality is zero.
const DefaultQuality = 90

// Options tunes encoding.
type Options struct {
	Quality  int // JPEG only, 1..100
	MaxWidth int // downscale wider images; 0 keeps the size
}

// Encode writes img in format f. Images need one (gray) or at least three
// channels; samples are rounded and clamped to 8 bits.
func Encode(w io.Writer, img *projection.Image, f Format, opts Options) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if img.C == 2 {
		return fmt.Errorf("sink: cannot encode %d channels: %w", img.C, projection.ErrInvalidParameter)
	}
	var m image.Image = img.NRGBA()
	if opts.MaxWidth > 0 && img.W > opts.MaxWidth {
		m = Downscale(m.(*image.NRGBA), opts.MaxWidth)
	}

	switch f {
	case JPEG:
		q := opts.Quality
		if q <= 0 {
			q = DefaultQuality
		}
		return jpeg.Encode(w, m, &jpeg.Options{Quality: min(q, 100)})
	case PNG:
		return png.Encode(w, m)
	case WebP:
		if err := nativewebp.Encode(w, m, nil); err != nil {
			return fmt.Errorf("sink: webp encode: %w", err)
		}
		return nil
	case BMP:
		return bmp.Encode(w, m)
	case TIFF:
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("sink: unknown format %v", f)
	}
}

// Downscale resizes img to the given width, keeping the aspect ratio.
func Downscale(img *image.NRGBA, width int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= width {
		return img
	}
	height := max(1, int(float64(b.Dy())*float64(width)/float64(b.Dx())+0.5))
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
