package repositories

import (
	"context"
	"errors"

	"github.com/shopping-mall/mall-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgCartNotFound = "cart not found"

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, translate(err, msgCartNotFound)
	}
	return &cart, nil
}

// Save writes the cart and replaces its lines with cart.Items in a single
// transaction. The last writer wins.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(cart).Error; err != nil {
			return err
		}

		keep := make([]uint, 0, len(cart.Items))
		for _, item := range cart.Items {
			if item.ID != 0 {
				keep = append(keep, item.ID)
			}
		}
		stale := tx.Where("cart_id = ?", cart.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		for i := range cart.Items {
			cart.Items[i].CartID = cart.ID
			if err := tx.Omit(clause.Associations).Save(&cart.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, msgCartNotFound)
}

// Reset empties the user's cart. A user without a cart is left alone.
func (r *CartRepository) Reset(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&cart).Updates(map[string]any{
			"total_quantity": 0,
			"total_price":    0,
		}).Error
	})
	return translate(err, msgCartNotFound)
}
