package iconbake

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"time"

	"github.com/corona10/goimagehash"
	"github.com/k1LoW/errors"
)

type MIMEType string

const (
	MIMETypeImagePNG  MIMEType = "image/png"
	MIMETypeImageJPEG MIMEType = "image/jpeg"
	MIMETypeImageGIF  MIMEType = "image/gif"
)

// Image is a decoded source image. The raw bytes are kept so checksums and
// hashes can be computed without re-reading the file; decoding is lazy.
type Image struct {
	i        image.Image
	nrgba    *image.NRGBA
	b        []byte // Raw image data
	mimeType MIMEType
	checksum uint32                 // Checksum for the image data
	pHash    *goimagehash.ImageHash // Perceptual hash
	modTime  time.Time              // Modification time of the image file
	path     string
}

// NewImage loads a source image from a file path.
func NewImage(path string) (_ *Image, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source image %s: %w", path, err)
	}
	modTime := fi.ModTime()
	if i, ok := LoadImageCache(path); ok && modTime.Equal(i.modTime) {
		return i, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source image %s: %w", path, err)
	}
	defer file.Close()
	i, err := newImageFromBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read source image %s: %w", path, err)
	}
	i.path = path
	i.modTime = modTime
	StoreImageCache(path, i)
	return i, nil
}

func newImageFromBuffer(r io.Reader) (_ *Image, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	_, mimeType, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	var mt MIMEType
	switch mimeType {
	case "png":
		mt = MIMETypeImagePNG
	case "jpeg":
		mt = MIMETypeImageJPEG
	case "gif":
		mt = MIMETypeImageGIF
	default:
		return nil, fmt.Errorf("unsupported image MIME type: %s", mimeType)
	}
	return &Image{
		b:        b,
		mimeType: mt,
	}, nil
}

// Path returns the file path the image was loaded from.
func (i *Image) Path() string {
	if i == nil {
		return ""
	}
	return i.path
}

// Image decodes the raw bytes on first use.
func (i *Image) Image() (image.Image, error) {
	if i == nil {
		return nil, fmt.Errorf("image is nil")
	}
	if i.i == nil {
		img, _, err := image.Decode(bytes.NewReader(i.b))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		i.i = img
	}
	return i.i, nil
}

// NRGBA returns the image converted to a 4-channel color+alpha raster.
// The conversion happens once; the result is shared by all render passes.
func (i *Image) NRGBA() (*image.NRGBA, error) {
	if i == nil {
		return nil, fmt.Errorf("image is nil")
	}
	if i.nrgba != nil {
		return i.nrgba, nil
	}
	img, err := i.Image()
	if err != nil {
		return nil, err
	}
	if n, ok := img.(*image.NRGBA); ok {
		i.nrgba = n
		return n, nil
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	i.nrgba = n
	return n, nil
}

// Bounds returns the pixel dimensions of the decoded image.
func (i *Image) Bounds() (image.Rectangle, error) {
	img, err := i.Image()
	if err != nil {
		return image.Rectangle{}, err
	}
	return img.Bounds(), nil
}

func (i *Image) Checksum() uint32 {
	if i == nil {
		return 0
	}
	if i.checksum == 0 {
		i.checksum = crc32.ChecksumIEEE(i.b)
	}
	return i.checksum
}

func (i *Image) PHash() (_ *goimagehash.ImageHash, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if i == nil {
		return nil, fmt.Errorf("image is nil")
	}
	if i.pHash == nil {
		img, err := i.Image()
		if err != nil {
			return nil, err
		}
		pHash, err := goimagehash.PerceptionHash(img)
		if err != nil {
			return nil, fmt.Errorf("failed to compute perceptual hash: %w", err)
		}
		i.pHash = pHash
	}
	return i.pHash, nil
}

// Equivalent reports whether two images show the same content. Byte-identical
// images match by checksum; otherwise perceptual hashes are compared, since a
// resized render never matches its source byte for byte.
func (i *Image) Equivalent(ii *Image) bool {
	if i == nil || ii == nil {
		return false
	}
	if i.Checksum() == ii.Checksum() {
		return true
	}
	aHash, err := i.PHash()
	if err != nil {
		return false
	}
	bHash, err := ii.PHash()
	if err != nil {
		return false
	}
	distance, err := aHash.Distance(bHash)
	if err != nil {
		return false
	}
	if distance < 5 { // threshold for similarity
		return true
	}
	return false
}

func (i *Image) Bytes() []byte {
	if i == nil {
		return nil
	}
	return i.b
}
