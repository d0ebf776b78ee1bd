// Package services holds the storefront's business rules. Handlers call
// into it; it talks to storage only through the interfaces below.
package services

import (
	"context"
	"time"

	"github.com/shopping-mall/mall-api/models"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context, offset, limit int) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type CartStore interface {
	FindByUser(ctx context.Context, userID uint) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Reset(ctx context.Context, userID uint) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus, deliveredAt *time.Time) (*models.Order, error)
	Delete(ctx context.Context, id uint) (*models.Order, error)
}
