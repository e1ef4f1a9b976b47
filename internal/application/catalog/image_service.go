package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/storage"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ObjectStorage stores uploaded files under relative keys
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, key string) error
}

// ImageProcessor validates and normalizes uploaded pictures
type ImageProcessor interface {
	Process(data []byte) (*storage.ProcessedImage, error)
}

// ImageService manages product images
type ImageService struct {
	imageRepo   catalog.ImageRepository
	productRepo catalog.ProductRepository
	storage     ObjectStorage
	processor   ImageProcessor
	presenter   *ProductPresenter
	logger      *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(
	imageRepo catalog.ImageRepository,
	productRepo catalog.ProductRepository,
	objectStorage ObjectStorage,
	processor ImageProcessor,
	presenter *ProductPresenter,
	logger *zap.Logger,
) *ImageService {
	return &ImageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		storage:     objectStorage,
		processor:   processor,
		presenter:   presenter,
		logger:      logger,
	}
}

// List returns the images of one product when productID is set, otherwise
// a page of all images
func (s *ImageService) List(ctx context.Context, productID string, page, pageSize int) (*ListResult[ImageResponse], error) {
	id, err := parseOptionalID(productID, "product")
	if err != nil {
		return nil, err
	}
	filter := PageFilter(page, pageSize)
	if id != nil {
		images, err := s.imageRepo.FindByProduct(ctx, *id)
		if err != nil {
			return nil, err
		}
		filter.Page, filter.PageSize = 1, len(images)
		return NewListResult(s.presenter.Images(ctx, images), int64(len(images)), filter), nil
	}

	images, total, err := s.imageRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return NewListResult(s.presenter.Images(ctx, images), total, filter), nil
}

// GetByID returns one image
func (s *ImageService) GetByID(ctx context.Context, id uuid.UUID) (*ImageResponse, error) {
	img, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.presenter.Image(ctx, img)
	return &resp, nil
}

// Upload stores a JPEG or PNG picture for one of the seller's products.
// Wide pictures are downscaled before they are stored.
func (s *ImageService) Upload(ctx context.Context, sellerID uuid.UUID, input UploadImageInput) (_ *ImageResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ImageService", "Upload",
		attribute.String("product.id", input.ProductID.String()),
		attribute.Int("upload.bytes", len(input.Data)))
	defer func() { telemetry.EndSpan(span, err) }()

	if err := s.ensureOwner(ctx, sellerID, input.ProductID); err != nil {
		return nil, err
	}
	if len(input.Data) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image file is empty")
	}

	processed, err := s.processor.Process(input.Data)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			return nil, shared.NewDomainError("INVALID_IMAGE", "Only JPEG and PNG images are allowed")
		}
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image could not be decoded")
	}

	key := catalog.ImageUploadPrefix + uuid.NewString() + processed.Extension
	if err := s.storage.Upload(ctx, key, processed.Data, processed.ContentType); err != nil {
		s.logger.Error("Failed to store image", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	img, err := catalog.NewImage(input.ProductID, key)
	if err != nil {
		return nil, err
	}
	if err := s.imageRepo.Save(ctx, img); err != nil {
		s.removeObject(ctx, key)
		return nil, err
	}

	s.logger.Info("Image uploaded",
		zap.String("image_id", img.ID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.Int("width", processed.Width),
		zap.Int("height", processed.Height))

	resp := s.presenter.Image(ctx, img)
	return &resp, nil
}

// Register attaches an already stored relative path to a product
func (s *ImageService) Register(ctx context.Context, sellerID uuid.UUID, req RegisterImageRequest) (*ImageResponse, error) {
	if err := s.ensureOwner(ctx, sellerID, req.ProductID); err != nil {
		return nil, err
	}
	img, err := catalog.NewImage(req.ProductID, req.Image)
	if err != nil {
		return nil, err
	}
	if err := s.imageRepo.Save(ctx, img); err != nil {
		return nil, err
	}
	resp := s.presenter.Image(ctx, img)
	return &resp, nil
}

// Delete removes an image of one of the seller's products. Files this
// service uploaded are removed from storage too.
func (s *ImageService) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	img, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureOwner(ctx, sellerID, img.ProductID); err != nil {
		return err
	}
	if err := s.imageRepo.Delete(ctx, id); err != nil {
		return err
	}
	if strings.HasPrefix(img.Path, catalog.ImageUploadPrefix) {
		s.removeObject(ctx, img.Path)
	}
	return nil
}

func (s *ImageService) ensureOwner(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return err
	}
	if !product.IsOwnedBy(sellerID) {
		return shared.NewDomainError("FORBIDDEN", "You can only manage images of your own products")
	}
	return nil
}

func (s *ImageService) removeObject(ctx context.Context, key string) {
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to delete stored image", zap.String("key", key), zap.Error(err))
	}
}
