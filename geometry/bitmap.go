package geometry

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Bitmap is a pixel mask backed by a decoded image.
type Bitmap struct {
	Image image.Image
}

// NewBitmap wraps an already decoded image.
func NewBitmap(img image.Image) Bitmap {
	return Bitmap{Image: img}
}

// DecodeBitmap reads a mask image from disk.
func DecodeBitmap(path string) (Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bitmap{}, err
	}
	defer f.Close()
	m, _, err := image.Decode(f)
	if err != nil {
		return Bitmap{}, fmt.Errorf("decode bitmap %s: %w", path, err)
	}
	return Bitmap{Image: m}, nil
}

// Width of the mask in pixels.
func (b Bitmap) Width() int { return b.Image.Bounds().Dx() }

// Height of the mask in pixels.
func (b Bitmap) Height() int { return b.Image.Bounds().Dy() }

func (b Bitmap) String() string {
	return fmt.Sprintf("Bitmap(%dx%d)", b.Width(), b.Height())
}
