package models

import (
	"time"

	"gorm.io/datatypes"
)

type Category string

const (
	CategoryTop       Category = "상의"
	CategoryBottom    Category = "하의"
	CategoryAccessory Category = "악세사리"
)

var Categories = []Category{CategoryTop, CategoryBottom, CategoryAccessory}

func (c Category) Valid() bool {
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SKU         string         `gorm:"size:64;uniqueIndex;not null" json:"sku"`
	Name        string         `gorm:"not null" json:"name"`
	Price       int64          `gorm:"not null" json:"price"`
	Category    Category       `gorm:"type:varchar(32);not null;index" json:"category"`
	Image       string         `gorm:"not null" json:"image"`
	Description string         `json:"description"`
	Colors      datatypes.JSON `json:"colors,omitempty"`
	Sizes       datatypes.JSON `json:"sizes,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type ProductInput struct {
	SKU         string   `json:"sku" yaml:"sku" binding:"required"`
	Name        string   `json:"name" yaml:"name" binding:"required"`
	Price       *int64   `json:"price" yaml:"price" binding:"required,min=0"`
	Category    Category `json:"category" yaml:"category" binding:"required,category"`
	Image       string   `json:"image" yaml:"image" binding:"required"`
	Description string   `json:"description" yaml:"description"`
	Colors      []string `json:"colors" yaml:"colors"`
	Sizes       []string `json:"sizes" yaml:"sizes"`
}

type ProductUpdate struct {
	SKU         *string   `json:"sku"`
	Name        *string   `json:"name"`
	Price       *int64    `json:"price" binding:"omitempty,min=0"`
	Category    *Category `json:"category" binding:"omitempty,category"`
	Image       *string   `json:"image"`
	Description *string   `json:"description"`
	Colors      *[]string `json:"colors"`
	Sizes       *[]string `json:"sizes"`
}
