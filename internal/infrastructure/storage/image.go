package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

// ErrUnsupportedImage is returned for uploads that are neither JPEG nor PNG
var ErrUnsupportedImage = errors.New("unsupported image format, only JPEG and PNG are allowed")

// jpegQuality is the encoder quality for re-encoded JPEG uploads
const jpegQuality = 85

// ProcessedImage is an upload ready to be stored
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// ImageProcessor downscales uploads wider than MaxWidth, keeping the aspect
// ratio and the source format. A zero MaxWidth keeps the original size.
type ImageProcessor struct {
	MaxWidth uint
}

// NewImageProcessor creates an ImageProcessor
func NewImageProcessor(maxWidth uint) *ImageProcessor {
	return &ImageProcessor{MaxWidth: maxWidth}
}

// Process decodes, resizes and re-encodes an uploaded image
func (p *ImageProcessor) Process(data []byte) (*ProcessedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedImage
		}
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if format != "jpeg" && format != "png" {
		return nil, ErrUnsupportedImage
	}

	if p.MaxWidth > 0 && uint(img.Bounds().Dx()) > p.MaxWidth {
		img = resize.Resize(p.MaxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	out := &ProcessedImage{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	switch format {
	case "png":
		err = png.Encode(&buf, img)
		out.ContentType, out.Extension = "image/png", ".png"
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
		out.ContentType, out.Extension = "image/jpeg", ".jpg"
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}
