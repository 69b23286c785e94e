package iconbake

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// newGlyphImage builds an opaque circle on a transparent ground, the shape of
// a typical icon glyph.
func newGlyphImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := w/2, h/2
	r := w / 3
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
			}
		}
	}
	return img
}

// newOpaqueImage builds a fully opaque image with a red center and a blue
// border ring of the given thickness, so crop framing is visible in tests.
func newOpaqueImage(w, h, ring int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 220, G: 30, B: 30, A: 255}
			if x < ring || y < ring || x >= w-ring || y >= h-ring {
				c = color.NRGBA{R: 30, G: 30, B: 220, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestSource(t *testing.T, img image.Image) *Image {
	t.Helper()
	path := writePNG(t, t.TempDir(), "source.png", img)
	src, err := NewImage(path)
	if err != nil {
		t.Fatal(err)
	}
	return src
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}
