package repositories

import (
	"context"
	"time"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"gorm.io/gorm"
)

const (
	msgOrderNotFound     = "order not found"
	msgDuplicatedPayment = "an order for this transaction already exists"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("User")
}

// Create inserts the order and its lines. The unique index on the payment
// transaction id turns a second insert for the same payment into a conflict.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Omit("User").Create(order).Error
	if err != nil {
		err = translate(err, msgOrderNotFound)
		if apperrors.Is(err, apperrors.KindConflict) {
			return apperrors.Conflict(msgDuplicatedPayment, nil)
		}
		return err
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err, msgOrderNotFound)
	}
	return &order, nil
}

func (r *OrderRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Order, error) {
	var order models.Order
	err := r.withDetails(ctx).
		Where("payment_transaction_id = ?", transactionID).
		First(&order).Error
	if err != nil {
		return nil, translate(err, msgOrderNotFound)
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.withDetails(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err, msgOrderNotFound)
	}
	return orders, nil
}

func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			return db.Where("status = ?", filter.Status)
		}
		return db
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Scopes(scope).Count(&count).Error; err != nil {
		return nil, 0, translate(err, msgOrderNotFound)
	}

	query := r.withDetails(ctx).Scopes(scope).Order("created_at desc").Order("id desc")
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, translate(err, msgOrderNotFound)
	}
	return orders, count, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus, deliveredAt *time.Time) (*models.Order, error) {
	updates := map[string]any{"status": status}
	if deliveredAt != nil {
		updates["delivered_at"] = *deliveredAt
	}
	if err := r.db.WithContext(ctx).Model(&models.Order{ID: id}).Updates(updates).Error; err != nil {
		return nil, translate(err, msgOrderNotFound)
	}
	return r.FindByID(ctx, id)
}

// Delete removes the order and its lines and returns what was removed.
func (r *OrderRepository) Delete(ctx context.Context, id uint) (*models.Order, error) {
	order, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
	if err != nil {
		return nil, translate(err, msgOrderNotFound)
	}
	return order, nil
}
