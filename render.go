package iconbake

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/k1LoW/errors"
	"github.com/nfnt/resize"
)

// renderIcon produces one px×px icon from src. The source is stretched square
// to px*scaleFactor (its aspect ratio is ignored), center-cropped back to
// px×px and composited onto a transparent canvas, so the artwork bleeds to
// every edge with no padding and every size shares the same framing.
func renderIcon(src *image.NRGBA, px int, scaleFactor float64) (_ *image.NRGBA, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if px <= 0 {
		return nil, fmt.Errorf("invalid icon size: %d", px)
	}
	if scaleFactor <= 0 {
		return nil, fmt.Errorf("invalid scale factor: %v", scaleFactor)
	}
	contentSize := int(float64(px) * scaleFactor)
	if contentSize < 1 {
		// resize.Resize(0, 0, ...) falls back to the source dimensions and
		// the paste rectangle collapses, silently writing an empty icon.
		return nil, fmt.Errorf("scale factor %v leaves no content for a %dx%d icon", scaleFactor, px, px)
	}
	content := resize.Resize(uint(contentSize), uint(contentSize), src, resize.Lanczos3)

	canvas := image.NewNRGBA(image.Rect(0, 0, px, px))
	var dr image.Rectangle
	var sp image.Point
	if contentSize > px {
		// Content overflows the canvas: drop an equal margin from every edge.
		margin := (contentSize - px) / 2
		dr = image.Rect(0, 0, px, px)
		sp = image.Pt(margin, margin)
	} else {
		// Content fits: center it on the canvas.
		off := (px - contentSize) / 2
		dr = image.Rect(off, off, off+contentSize, off+contentSize)
	}
	// draw.Over keeps any transparency the source carries.
	draw.Draw(canvas, dr, content, sp, draw.Over)
	return canvas, nil
}

// savePNG encodes img with full compression and writes it to path,
// overwriting any existing file of that name.
func savePNG(img image.Image, path string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
