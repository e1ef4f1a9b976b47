package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ImageUploadPrefix is the directory uploaded product images are stored under
const ImageUploadPrefix = "products/"

// Image is a product picture stored under a relative path
type Image struct {
	shared.BaseEntity
	ProductID uuid.UUID
	Path      string
}

// NewImage creates an image for a product
func NewImage(productID uuid.UUID, path string) (*Image, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	path = CleanImagePath(path)
	if path == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image path cannot be empty")
	}
	if len(path) > 500 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image path cannot exceed 500 characters")
	}
	return &Image{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Path:       path,
	}, nil
}

// CleanImagePath trims whitespace, leading slashes and one "media/" prefix
func CleanImagePath(path string) string {
	cleaned := strings.TrimLeft(strings.TrimSpace(path), "/")
	return strings.TrimPrefix(cleaned, "media/")
}

// ImageURL joins the media base URL and a stored path.
// An empty path yields an empty URL.
func ImageURL(mediaURL, path string) string {
	cleaned := CleanImagePath(path)
	if cleaned == "" {
		return ""
	}
	return strings.TrimRight(mediaURL, "/") + "/" + cleaned
}

// URL returns the image's URL under the media base
func (i *Image) URL(mediaURL string) string {
	return ImageURL(mediaURL, i.Path)
}
