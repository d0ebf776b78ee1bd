package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/services"
	"github.com/shopping-mall/mall-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	body string
	err  error
}

func (f *fakeImages) Upload(_ context.Context, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	raw, _ := io.ReadAll(r)
	f.body = string(raw)
	return "https://bucket.s3.amazonaws.com/products/new.jpg", nil
}

func TestCreateProductNormalizes(t *testing.T) {
	f := newFixture(t)
	price := int64(29000)

	product, err := f.products.Create(context.Background(), models.ProductInput{
		SKU: "  bot-001 ", Name: " Wide pants ", Price: &price, Category: models.CategoryBottom,
		Image: "https://cdn.example.com/bot-001.jpg", Sizes: []string{" S ", "", "M"},
	})

	require.NoError(t, err)
	assert.Equal(t, "BOT-001", product.SKU)
	assert.Equal(t, "Wide pants", product.Name)
	assert.JSONEq(t, `["S","M"]`, string(product.Sizes))
	assert.Nil(t, product.Colors)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	price, negative := int64(1000), int64(-1)

	cases := map[string]models.ProductInput{
		"missing price":  {SKU: "X-1", Name: "X", Category: models.CategoryTop, Image: "i"},
		"negative price": {SKU: "X-1", Name: "X", Price: &negative, Category: models.CategoryTop, Image: "i"},
		"bad category":   {SKU: "X-1", Name: "X", Price: &price, Category: "shoes", Image: "i"},
		"duplicate sku":  {SKU: "Top-001", Name: "X", Price: &price, Category: models.CategoryTop, Image: "i"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.products.Create(ctx, input)
			requireKind(t, err, apperrors.KindValidation)
		})
	}
}

func TestListProductsNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.product(t, "bot-001", "Wide pants", 29000, models.CategoryBottom)

	page, err := f.products.List(context.Background(), utils.NewPagination("1", "", services.DefaultProductPageSize))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "BOT-001", page.Products[0].SKU)
	assert.Equal(t, "ACC-001", page.Products[1].SKU)
	assert.True(t, page.Pagination.HasNext(page.Total))
	assert.False(t, page.Pagination.HasPrev())

	page, err = f.products.List(context.Background(), utils.NewPagination("2", "", services.DefaultProductPageSize))
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.False(t, page.Pagination.HasNext(page.Total))
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	name, sku := "Oxford shirt", "acc-001"

	product, err := f.products.Update(ctx, f.shirt.ID, models.ProductUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Oxford shirt", product.Name)
	assert.Equal(t, int64(10000), product.Price)

	_, err = f.products.Update(ctx, f.shirt.ID, models.ProductUpdate{SKU: &sku})
	requireKind(t, err, apperrors.KindValidation)

	_, err = f.products.Update(ctx, 999, models.ProductUpdate{Name: &name})
	requireKind(t, err, apperrors.KindNotFound)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.products.Delete(ctx, f.cap.ID))
	_, err := f.products.Get(ctx, f.cap.ID)
	requireKind(t, err, apperrors.KindNotFound)
}

func TestAttachImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.products.AttachImage(ctx, f.cap.ID, strings.NewReader("jpeg"))
	requireKind(t, err, apperrors.KindUnavailable)

	images := &fakeImages{}
	products := services.NewProductService(f.stores.Products, images)
	product, err := products.AttachImage(ctx, f.cap.ID, strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/products/new.jpg", product.Image)
	assert.Equal(t, "jpeg", images.body)

	images.err = apperrors.Unavailable("failed to upload image", errors.New("timeout"))
	_, err = products.AttachImage(ctx, f.cap.ID, strings.NewReader("jpeg"))
	requireKind(t, err, apperrors.KindUnavailable)

	_, err = products.AttachImage(ctx, 999, strings.NewReader("jpeg"))
	requireKind(t, err, apperrors.KindNotFound)
}

func TestSeedSkipsExistingSKUs(t *testing.T) {
	f := newFixture(t)
	price := int64(1000)
	inputs := []models.ProductInput{
		{SKU: "top-001", Name: "Linen shirt", Price: &price, Category: models.CategoryTop, Image: "i"},
		{SKU: "top-002", Name: "Tee", Price: &price, Category: models.CategoryTop, Image: "i"},
	}

	result, err := f.products.Seed(context.Background(), inputs)

	require.NoError(t, err)
	assert.Equal(t, services.SeedResult{Created: 1, Skipped: 1}, result)
}
