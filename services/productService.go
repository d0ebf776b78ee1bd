package services

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/utils"
	"gorm.io/datatypes"
)

const DefaultProductPageSize = 2

const msgSKUTaken = "SKU already exists"

// ImageUploader stores a product photo and returns the URL to serve it from.
type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

type ProductPage struct {
	Products   []models.Product
	Total      int64
	Pagination utils.Pagination
}

type ProductService struct {
	products ProductStore
	images   ImageUploader
}

// NewProductService builds the catalog service. images may be nil when no
// bucket is configured; uploads are then refused.
func NewProductService(products ProductStore, images ImageUploader) *ProductService {
	return &ProductService{products: products, images: images}
}

func normalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func encodeVariants(values []string) (datatypes.JSON, error) {
	if values == nil {
		return nil, nil
	}
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (s *ProductService) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	product := &models.Product{
		SKU:         normalizeSKU(input.SKU),
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		Image:       strings.TrimSpace(input.Image),
		Description: strings.TrimSpace(input.Description),
	}
	if product.SKU == "" || product.Name == "" || product.Image == "" || input.Price == nil {
		return nil, apperrors.Validation("sku, name, price, category and image are required")
	}
	if *input.Price < 0 {
		return nil, apperrors.Validation("price must not be negative")
	}
	product.Price = *input.Price
	if !product.Category.Valid() {
		return nil, apperrors.Validation("invalid category")
	}

	var err error
	if product.Colors, err = encodeVariants(input.Colors); err != nil {
		return nil, apperrors.Validation("invalid colors")
	}
	if product.Sizes, err = encodeVariants(input.Sizes); err != nil {
		return nil, apperrors.Validation("invalid sizes")
	}

	if err := s.products.Create(ctx, product); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Validation(msgSKUTaken)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, page utils.Pagination) (*ProductPage, error) {
	products, total, err := s.products.List(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Total: total, Pagination: page}, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, id uint, input models.ProductUpdate) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SKU != nil {
		if product.SKU = normalizeSKU(*input.SKU); product.SKU == "" {
			return nil, apperrors.Validation("sku must not be empty")
		}
	}
	if input.Name != nil {
		if product.Name = strings.TrimSpace(*input.Name); product.Name == "" {
			return nil, apperrors.Validation("name must not be empty")
		}
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.Validation("price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, apperrors.Validation("invalid category")
		}
		product.Category = *input.Category
	}
	if input.Image != nil {
		if product.Image = strings.TrimSpace(*input.Image); product.Image == "" {
			return nil, apperrors.Validation("image must not be empty")
		}
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Colors != nil {
		if product.Colors, err = encodeVariants(*input.Colors); err != nil {
			return nil, apperrors.Validation("invalid colors")
		}
	}
	if input.Sizes != nil {
		if product.Sizes, err = encodeVariants(*input.Sizes); err != nil {
			return nil, apperrors.Validation("invalid sizes")
		}
	}

	if err := s.products.Update(ctx, product); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Validation(msgSKUTaken)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.products.Delete(ctx, id)
}

// AttachImage uploads a new photo for the product and points it there.
func (s *ProductService) AttachImage(ctx context.Context, id uint, r io.Reader) (*models.Product, error) {
	if s.images == nil {
		return nil, apperrors.Unavailable("image storage is not configured", nil)
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Upload(ctx, r)
	if err != nil {
		return nil, err
	}
	product.Image = url
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

type SeedResult struct {
	Created int
	Skipped int
}

// Seed creates every product in inputs, skipping SKUs that already exist.
func (s *ProductService) Seed(ctx context.Context, inputs []models.ProductInput) (SeedResult, error) {
	var result SeedResult
	for _, input := range inputs {
		if _, err := s.Create(ctx, input); err != nil {
			if appErr, ok := apperrors.As(err); ok && appErr.Message == msgSKUTaken {
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Created++
	}
	return result, nil
}
