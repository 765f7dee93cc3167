package backend

import (
	"image"

	"github.com/lewtec/labelbridge/domain"
)

// UploadSource names where image bytes come from. Exactly one of the three
// fields must be set: a local filesystem path, a remote link the platform can
// fetch itself, or an in-memory decoded image.
type UploadSource struct {
	Path  string
	Link  string
	Image image.Image
}

// Validate enforces the exactly-one rule. Supplying two sources at once is an
// error rather than a silent preference.
func (s UploadSource) Validate() error {
	n := 0
	if s.Path != "" {
		n++
	}
	if s.Link != "" {
		n++
	}
	if s.Image != nil {
		n++
	}
	switch n {
	case 0:
		return domain.Validationf("upload source: one of path, link or image must be provided")
	case 1:
		return nil
	default:
		return domain.Validationf("upload source: path, link and image are mutually exclusive, got %d sources", n)
	}
}

// ImageUpload is one element of a batch upload.
type ImageUpload struct {
	Name   string
	Source UploadSource
}
