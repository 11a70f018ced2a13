package frames

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"panostills/internal/projection"
)

type decodeFunc func(io.Reader) (image.Image, error)

// decoders maps frame extensions to their decoder. The tga package
// registers an empty magic string with image.Decode, which would claim
// every file, so frames are never sniffed.
var decoders = map[string]decodeFunc{
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".png":  png.Decode,
	".tga":  tga.Decode,
	".webp": webp.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
}

// IsFrameFile reports whether path has a frame image extension.
func IsFrameFile(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load decodes an image file into a 3-channel frame.
func Load(path string) (*projection.Image, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("frames: %s: unsupported image extension", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("frames: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("frames: decode %s: %w", path, err)
	}
	return projection.FromImage(img), nil
}
