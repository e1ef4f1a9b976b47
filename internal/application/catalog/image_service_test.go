package catalog

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type imageFixture struct {
	images   *MockImageRepository
	products *MockProductRepository
	storage  *storage.LocalObjectStorage
	svc      *ImageService
}

func newImageFixture(t *testing.T) *imageFixture {
	t.Helper()
	local, err := storage.NewLocalObjectStorage(t.TempDir())
	require.NoError(t, err)

	f := &imageFixture{
		images:   new(MockImageRepository),
		products: new(MockProductRepository),
		storage:  local,
	}
	presenter := NewProductPresenter(f.products, f.images, NewMediaURLs("/media/"))
	f.svc = NewImageService(f.images, f.products, local, storage.NewImageProcessor(64), presenter, zap.NewNop())
	return f
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService_Upload_StoresProcessedImage(t *testing.T) {
	f := newImageFixture(t)
	sellerID := uuid.New()
	product := newTestProduct(t, sellerID, "10", true)

	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.images.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Image")).Return(nil)

	resp, err := f.svc.Upload(context.Background(), sellerID, UploadImageInput{
		ProductID: product.ID,
		Filename:  "lamp.png",
		Data:      pngBytes(t, 128, 32),
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Image, catalog.ImageUploadPrefix))
	assert.True(t, strings.HasSuffix(resp.Image, ".png"))
	assert.Equal(t, "/media/"+resp.Image, resp.ImageURL)

	exists, err := f.storage.ObjectExists(context.Background(), resp.Image)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestImageService_Upload_RejectsGIF(t *testing.T) {
	f := newImageFixture(t)
	sellerID := uuid.New()
	product := newTestProduct(t, sellerID, "10", true)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White}), nil))

	_, err := f.svc.Upload(context.Background(), sellerID, UploadImageInput{ProductID: product.ID, Data: buf.Bytes()})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_IMAGE", domainErr.Code)
	f.images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImageService_Upload_ForeignProduct(t *testing.T) {
	f := newImageFixture(t)
	product := newTestProduct(t, uuid.New(), "10", true)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := f.svc.Upload(context.Background(), uuid.New(), UploadImageInput{ProductID: product.ID, Data: pngBytes(t, 8, 8)})

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestImageService_Upload_RemovesObjectWhenSaveFails(t *testing.T) {
	f := newImageFixture(t)
	sellerID := uuid.New()
	product := newTestProduct(t, sellerID, "10", true)

	var savedPath string
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.images.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Image")).
		Run(func(args mock.Arguments) { savedPath = args.Get(1).(*catalog.Image).Path }).
		Return(assert.AnError)

	_, err := f.svc.Upload(context.Background(), sellerID, UploadImageInput{ProductID: product.ID, Data: pngBytes(t, 8, 8)})

	require.ErrorIs(t, err, assert.AnError)
	exists, err := f.storage.ObjectExists(context.Background(), savedPath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestImageService_Delete_RemovesUploadedObject(t *testing.T) {
	f := newImageFixture(t)
	sellerID := uuid.New()
	product := newTestProduct(t, sellerID, "10", true)
	key := catalog.ImageUploadPrefix + "old.png"
	require.NoError(t, f.storage.Upload(context.Background(), key, pngBytes(t, 4, 4), "image/png"))

	img, err := catalog.NewImage(product.ID, key)
	require.NoError(t, err)

	f.images.On("FindByID", mock.Anything, img.ID).Return(img, nil)
	f.images.On("Delete", mock.Anything, img.ID).Return(nil)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	require.NoError(t, f.svc.Delete(context.Background(), sellerID, img.ID))

	exists, err := f.storage.ObjectExists(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestImageService_List_ByProduct(t *testing.T) {
	f := newImageFixture(t)
	productID := uuid.New()
	images := []catalog.Image{
		{BaseEntity: shared.NewBaseEntity(), ProductID: productID, Path: "products/a.png"},
		{BaseEntity: shared.NewBaseEntity(), ProductID: productID, Path: "/media/products/b.png"},
	}
	f.images.On("FindByProduct", mock.Anything, productID).Return(images, nil)

	result, err := f.svc.List(context.Background(), productID.String(), 0, 0)

	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, "/media/products/b.png", result.Items[1].ImageURL)
}
