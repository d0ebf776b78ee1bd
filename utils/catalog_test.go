package utils

import (
	"strings"
	"testing"

	"github.com/shopping-mall/mall-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	input := `
products:
  - sku: top-001
    name: Linen shirt
    price: 39000
    category: 상의
    image: https://cdn.example.com/top-001.jpg
    sizes: [S, M, L]
  - sku: acc-001
    name: Cap
    price: 0
    category: 악세사리
    image: https://cdn.example.com/acc-001.jpg
`
	products, err := ParseCatalog(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "top-001", products[0].SKU)
	require.NotNil(t, products[0].Price)
	assert.Equal(t, int64(39000), *products[0].Price)
	assert.Equal(t, models.CategoryTop, products[0].Category)
	assert.Equal(t, []string{"S", "M", "L"}, products[0].Sizes)
	require.NotNil(t, products[1].Price)
	assert.Equal(t, int64(0), *products[1].Price)
}

func TestParseCatalogRejectsUnknownFields(t *testing.T) {
	_, err := ParseCatalog(strings.NewReader("products:\n  - sku: x\n    colour: red\n"))
	assert.Error(t, err)
}

func TestParseCatalogEmpty(t *testing.T) {
	products, err := ParseCatalog(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, products)
}
