package utils

import (
	"fmt"
	"io"

	"github.com/shopping-mall/mall-api/models"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Products []models.ProductInput `yaml:"products"`
}

// ParseCatalog reads a seed file of the form
//
//	products:
//	  - sku: TOP-001
//	    name: Linen shirt
//	    price: 39000
//	    category: 상의
//	    image: https://...
func ParseCatalog(r io.Reader) ([]models.ProductInput, error) {
	var catalog catalogFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid catalog file: %w", err)
	}
	return catalog.Products, nil
}
