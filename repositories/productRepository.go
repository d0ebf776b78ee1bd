package repositories

import (
	"context"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"gorm.io/gorm"
)

const msgProductNotFound = "product not found"

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error, msgProductNotFound)
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err, msgProductNotFound)
	}
	return &product, nil
}

// List returns one page of products, newest first, and the total count.
func (r *ProductRepository) List(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return nil, 0, translate(err, msgProductNotFound)
	}

	var products []models.Product
	result := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&products)
	if result.Error != nil {
		return nil, 0, translate(result.Error, msgProductNotFound)
	}
	return products, count, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return translate(r.db.WithContext(ctx).Save(product).Error, msgProductNotFound)
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return translate(result.Error, msgProductNotFound)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(msgProductNotFound)
	}
	return nil
}
