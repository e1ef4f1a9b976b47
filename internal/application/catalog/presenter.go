package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/samber/lo"
)

// ProductPresenter turns products into responses with their images.
// Cart and order listings reuse it for nested products.
type ProductPresenter struct {
	productRepo catalog.ProductRepository
	imageRepo   catalog.ImageRepository
	media       MediaURLs
}

// NewProductPresenter creates a ProductPresenter
func NewProductPresenter(productRepo catalog.ProductRepository, imageRepo catalog.ImageRepository, media MediaURLs) *ProductPresenter {
	return &ProductPresenter{productRepo: productRepo, imageRepo: imageRepo, media: media}
}

// Image renders one image
func (p *ProductPresenter) Image(ctx context.Context, img *catalog.Image) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		ProductID: img.ProductID,
		Image:     img.Path,
		ImageURL:  p.media.For(ctx, img.Path),
	}
}

// Images renders a list of images
func (p *ProductPresenter) Images(ctx context.Context, images []catalog.Image) []ImageResponse {
	return lo.Map(images, func(img catalog.Image, _ int) ImageResponse {
		return p.Image(ctx, &img)
	})
}

// ImageURL returns the URL of a stored path for the current request
func (p *ProductPresenter) ImageURL(ctx context.Context, path string) string {
	return p.media.For(ctx, path)
}

// Products renders products with their images loaded in one query
func (p *ProductPresenter) Products(ctx context.Context, products []catalog.Product) ([]ProductResponse, error) {
	ids := lo.Map(products, func(prod catalog.Product, _ int) uuid.UUID { return prod.ID })
	images, err := p.imageRepo.FindByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	byProduct := lo.GroupBy(images, func(img catalog.Image) uuid.UUID { return img.ProductID })

	return lo.Map(products, func(prod catalog.Product, _ int) ProductResponse {
		return p.render(ctx, &prod, byProduct[prod.ID])
	}), nil
}

// Product renders a single product
func (p *ProductPresenter) Product(ctx context.Context, product *catalog.Product) (*ProductResponse, error) {
	images, err := p.imageRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	resp := p.render(ctx, product, images)
	return &resp, nil
}

// ByIDs loads and renders products keyed by id; unknown ids are skipped
func (p *ProductPresenter) ByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ProductResponse, error) {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return map[uuid.UUID]ProductResponse{}, nil
	}
	products, err := p.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	rendered, err := p.Products(ctx, products)
	if err != nil {
		return nil, err
	}
	return lo.KeyBy(rendered, func(r ProductResponse) uuid.UUID { return r.ID }), nil
}

func (p *ProductPresenter) render(ctx context.Context, product *catalog.Product, images []catalog.Image) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       FormatPrice(product.Price),
		CategoryID:  product.CategoryID,
		SellerID:    product.SellerID,
		IsPublished: product.IsPublished,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
		Images:      p.Images(ctx, images),
	}
}
