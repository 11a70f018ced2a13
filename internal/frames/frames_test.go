package frames

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"panostills/internal/projection"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeBMP(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, bmp.Encode(f, img))
}

func TestOpenDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "frame_0002.png"), solid(8, 4, color.NRGBA{20, 0, 0, 255}))
	writeBMP(t, filepath.Join(dir, "frame_0001.BMP"), solid(8, 4, color.NRGBA{10, 0, 0, 255}))
	writePNG(t, filepath.Join(dir, "frame_0003.png"), solid(8, 4, color.NRGBA{30, 40, 50, 255}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))

	src, err := Open(dir, 25)
	require.NoError(t, err)
	assert.Equal(t, 3, src.Len())
	assert.Equal(t, 25.0, src.FPS())

	for n, want := range []float32{10, 20, 30} {
		img, err := src.Frame(n)
		require.NoError(t, err)
		assert.Equal(t, 4, img.H)
		assert.Equal(t, 8, img.W)
		assert.Equal(t, 3, img.C)
		assert.Equal(t, want, img.At(2, 5)[0])
	}
	img, err := src.Frame(2)
	require.NoError(t, err)
	assert.Equal(t, []float32{30, 40, 50}, img.At(0, 0))

	_, err = src.Frame(3)
	assert.Error(t, err)
	_, err = src.Frame(-1)
	assert.Error(t, err)
}

func TestOpenSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pano.png")
	writePNG(t, path, solid(4, 2, color.NRGBA{1, 2, 3, 255}))

	src, err := Open(path, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, src.Len())
	p, ok := src.Path(0)
	assert.True(t, ok)
	assert.Equal(t, path, p)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(dir, 30)
	assert.ErrorContains(t, err, "no images")

	_, err = Open(dir, 0)
	assert.Error(t, err)

	_, err = Open(filepath.Join(dir, "missing"), 30)
	assert.ErrorIs(t, err, os.ErrNotExist)

	txt := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(txt, nil, 0644))
	_, err = Open(txt, 30)
	assert.Error(t, err)
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	src := solid(6, 4, color.NRGBA{200, 100, 50, 255})
	encoders := map[string]func(f *os.File) error{
		"a.jpg": func(f *os.File) error { return jpeg.Encode(f, src, &jpeg.Options{Quality: 100}) },
		"b.png": func(f *os.File) error { return png.Encode(f, src) },
		"c.tga": func(f *os.File) error { return tga.Encode(f, src) },
	}
	for name, enc := range encoders {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, enc(f))
		require.NoError(t, f.Close())
	}

	for _, name := range []string{"a.jpg", "b.png", "c.tga"} {
		t.Run(name, func(t *testing.T) {
			img, err := Load(filepath.Join(dir, name))
			require.NoError(t, err)
			assert.Equal(t, 4, img.H)
			assert.Equal(t, 6, img.W)
			assert.Equal(t, 3, img.C)
			px := img.At(1, 2)
			assert.InDelta(t, 200, px[0], 4)
			assert.InDelta(t, 100, px[1], 4)
			assert.InDelta(t, 50, px[2], 4)
		})
	}

	_, err := Load(filepath.Join(dir, "notes.txt"))
	assert.ErrorContains(t, err, "unsupported")
	assert.True(t, IsFrameFile("x.TGA"))
	assert.False(t, IsFrameFile("x.gif"))
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not a jpeg"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "decode")
}

type fixed struct {
	n   int
	fps float64
}

func (f fixed) Len() int     { return f.n }
func (f fixed) FPS() float64 { return f.fps }
func (fixed) Frame(int) (*projection.Image, error) {
	return nil, nil
}

func TestFrameNumber(t *testing.T) {
	src := fixed{n: 300, fps: 29.97}
	assert.Equal(t, 0, FrameNumber(src, 0))
	assert.Equal(t, 59, FrameNumber(src, 2))
	assert.Equal(t, 300, FrameNumber(src, 60))
	assert.Equal(t, 300, FrameNumber(src, math.Inf(1)))
}

func TestRange(t *testing.T) {
	src := fixed{n: 10, fps: 30}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, Range(src, 0, -1, 1))
	assert.Equal(t, []int{2, 5, 8}, Range(src, 2, 100, 3))
	assert.Equal(t, []int{4, 6}, Range(src, 4, 8, 2))
	assert.Empty(t, Range(src, 5, 5, 1))
}
