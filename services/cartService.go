package services

import (
	"context"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
)

const (
	msgCartItemNotFound = "cart item not found"
	msgQuantityTooLarge = "quantity is too large"
)

type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the user's cart, or an empty one if none was created yet.
func (s *CartService) Get(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem puts quantity units of a product in the cart. A line with the same
// product and options is topped up; otherwise a new line snapshots the
// current price.
func (s *CartService) AddItem(ctx context.Context, userID uint, input models.CartItemInput) (*models.Cart, error) {
	if input.ProductID == 0 {
		return nil, apperrors.Validation("productId is required")
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	created := cart.ID == 0
	options := input.SelectedOptions.Normalize()
	if err := addLine(cart, product, quantity, options); err != nil {
		return nil, err
	}

	saved, err := s.save(ctx, cart)
	if err != nil && created && apperrors.Is(err, apperrors.KindConflict) {
		// Another request created the cart first; apply the add to it.
		cart, err = s.carts.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := addLine(cart, product, quantity, options); err != nil {
			return nil, err
		}
		return s.save(ctx, cart)
	}
	return saved, err
}

func addLine(cart *models.Cart, product *models.Product, quantity int, options models.SelectedOptions) error {
	if i := cart.FindLine(product.ID, options); i >= 0 {
		merged, err := models.AddQuantity(cart.Items[i].Quantity, quantity)
		if err != nil {
			return apperrors.Validation(msgQuantityTooLarge)
		}
		cart.Items[i].Quantity = merged
		return nil
	}
	cart.Items = append(cart.Items, models.CartItem{
		ProductID:       product.ID,
		Quantity:        quantity,
		Price:           product.Price,
		SelectedOptions: options,
	})
	return nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, input models.CartItemUpdate) (*models.Cart, error) {
	if input.Quantity == nil || *input.Quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	i := cart.ItemIndex(itemID)
	if i < 0 {
		return nil, apperrors.NotFound(msgCartItemNotFound)
	}
	cart.Items[i].Quantity = *input.Quantity
	return s.save(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	i := cart.ItemIndex(itemID)
	if i < 0 {
		return nil, apperrors.NotFound(msgCartItemNotFound)
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	return s.save(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Empty()
	return s.save(ctx, cart)
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if err := cart.Recalculate(); err != nil {
		return nil, apperrors.Validation(msgQuantityTooLarge)
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.Get(ctx, cart.UserID)
}
