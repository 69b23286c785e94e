package iconbake

import (
	"image"
	"testing"
)

func TestRenderIconDimensions(t *testing.T) {
	src := newGlyphImage(512, 512)
	tests := []struct {
		name        string
		px          int
		scaleFactor float64
	}{
		{"smallest slot", 29, 1.2},
		{"margin slot", 60, 1.2},
		{"marketing slot", 1024, 1.2},
		{"no enlargement", 60, 1.0},
		{"content smaller than canvas", 60, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderIcon(src, tt.px, tt.scaleFactor)
			if err != nil {
				t.Fatalf("renderIcon() error = %v", err)
			}
			b := got.Bounds()
			if b.Dx() != tt.px || b.Dy() != tt.px {
				t.Errorf("renderIcon() bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.px, tt.px)
			}
		})
	}
}

func TestRenderIconInvalidInput(t *testing.T) {
	src := newGlyphImage(64, 64)
	tests := []struct {
		name        string
		px          int
		scaleFactor float64
	}{
		{"zero size", 0, 1.2},
		{"negative size", -1, 1.2},
		{"zero scale factor", 60, 0},
		{"negative scale factor", 60, -1.2},
		{"scale factor collapses content", 60, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := renderIcon(src, tt.px, tt.scaleFactor); err == nil {
				t.Error("renderIcon() error = nil, want error")
			}
		})
	}
}

// The border ring is thinner than the crop margin, so a correctly centered
// crop removes it entirely. size=60 scale=1.2 gives content 72x72 and a
// margin of 6 on every edge; a 3px ring (30px on the 720px source) falls
// inside the discarded band.
func TestRenderIconCropsSymmetricMargin(t *testing.T) {
	src := newOpaqueImage(720, 720, 30)
	got, err := renderIcon(src, 60, 1.2)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []image.Point{
		{0, 0}, {59, 0}, {0, 59}, {59, 59}, {30, 30},
	} {
		c := got.NRGBAAt(p.X, p.Y)
		if c.A != 255 {
			t.Errorf("pixel %v alpha = %d, want 255", p, c.A)
		}
		if c.B >= c.R {
			t.Errorf("pixel %v = %v, want the border ring cropped away (red dominant)", p, c)
		}
	}
}

// With a ring thicker than the margin, part of the ring must survive the
// crop: the framing is zoomed, not clipped to the center region.
func TestRenderIconKeepsContentPastMargin(t *testing.T) {
	src := newOpaqueImage(720, 720, 120) // 12px ring at content scale, margin is 6
	got, err := renderIcon(src, 60, 1.2)
	if err != nil {
		t.Fatal(err)
	}
	c := got.NRGBAAt(1, 1)
	if c.R >= c.B {
		t.Errorf("corner pixel = %v, want part of the border ring kept (blue dominant)", c)
	}
}

func TestRenderIconScaleFactorOneHasNoTransparentBorder(t *testing.T) {
	src := newOpaqueImage(256, 256, 8)
	got, err := renderIcon(src, 60, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	b := got.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got.NRGBAAt(x, y).A != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want fully opaque output for scale factor 1.0", x, y, got.NRGBAAt(x, y).A)
			}
		}
	}
}

func TestRenderIconPreservesSourceTransparency(t *testing.T) {
	src := newGlyphImage(512, 512)
	got, err := renderIcon(src, 120, 1.2)
	if err != nil {
		t.Fatal(err)
	}
	// The glyph is a centered circle; the canvas corners stay transparent.
	for _, p := range []image.Point{
		{0, 0}, {119, 0}, {0, 119}, {119, 119},
	} {
		if a := got.NRGBAAt(p.X, p.Y).A; a != 0 {
			t.Errorf("corner %v alpha = %d, want 0", p, a)
		}
	}
	if a := got.NRGBAAt(60, 60).A; a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}
}
