package services_test

import (
	"context"
	"math"
	"testing"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertTotals(t *testing.T, cart *models.Cart) {
	t.Helper()
	quantity, price := 0, int64(0)
	for _, item := range cart.Items {
		quantity += item.Quantity
		price += item.Price * int64(item.Quantity)
	}
	assert.Equal(t, quantity, cart.TotalQuantity)
	assert.Equal(t, price, cart.TotalPrice)
}

func TestGetCartWithoutCart(t *testing.T) {
	f := newFixture(t)

	cart, err := f.carts.Get(context.Background(), f.customer.ID)

	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.NotNil(t, cart.Items)
	assert.Zero(t, cart.TotalQuantity)
	assert.Zero(t, cart.TotalPrice)
}

func TestCartTotalsAfterEveryMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addToCart(t, f.shirt, 2, "M")
	cart := f.addToCart(t, f.cap, 1, "")
	assertTotals(t, cart)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, int64(25000), cart.TotalPrice)

	quantity := 5
	cart, err := f.carts.UpdateItem(ctx, f.customer.ID, cart.Items[1].ID, models.CartItemUpdate{Quantity: &quantity})
	require.NoError(t, err)
	assertTotals(t, cart)
	assert.Equal(t, int64(45000), cart.TotalPrice)

	cart, err = f.carts.RemoveItem(ctx, f.customer.ID, cart.Items[0].ID)
	require.NoError(t, err)
	assertTotals(t, cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.cap.ID, cart.Items[0].ProductID)

	cart, err = f.carts.Clear(ctx, f.customer.ID)
	require.NoError(t, err)
	assertTotals(t, cart)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)
}

func TestAddItemMergesSameOptions(t *testing.T) {
	f := newFixture(t)

	f.addToCart(t, f.shirt, 1, "M")
	cart := f.addToCart(t, f.shirt, 2, " M ")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	cart = f.addToCart(t, f.shirt, 1, "L")
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "L", cart.Items[1].SelectedOptions.Size)
	assertTotals(t, cart)
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addToCart(t, f.shirt, 1, "")
	price := int64(99000)
	_, err := f.products.Update(ctx, f.shirt.ID, models.ProductUpdate{Price: &price})
	require.NoError(t, err)

	cart, err := f.carts.Get(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), cart.Items[0].Price)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "Linen shirt", cart.Items[0].Product.Name)
}

func TestAddItemDefaultsToOneUnit(t *testing.T) {
	f := newFixture(t)

	cart, err := f.carts.AddItem(context.Background(), f.customer.ID, models.CartItemInput{ProductID: f.cap.ID})

	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	zero := 0

	_, err := f.carts.AddItem(ctx, f.customer.ID, models.CartItemInput{})
	requireKind(t, err, apperrors.KindValidation)

	_, err = f.carts.AddItem(ctx, f.customer.ID, models.CartItemInput{ProductID: f.cap.ID, Quantity: &zero})
	requireKind(t, err, apperrors.KindValidation)

	_, err = f.carts.AddItem(ctx, f.customer.ID, models.CartItemInput{ProductID: 999})
	requireKind(t, err, apperrors.KindNotFound)
}

func TestUpdateItemErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	two := 2

	_, err := f.carts.UpdateItem(ctx, f.customer.ID, 1, models.CartItemUpdate{Quantity: &two})
	requireKind(t, err, apperrors.KindNotFound)

	f.addToCart(t, f.cap, 1, "")
	_, err = f.carts.UpdateItem(ctx, f.customer.ID, 999, models.CartItemUpdate{Quantity: &two})
	requireKind(t, err, apperrors.KindNotFound)

	_, err = f.carts.UpdateItem(ctx, f.customer.ID, 1, models.CartItemUpdate{})
	requireKind(t, err, apperrors.KindValidation)
}

func TestClearWithoutCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.carts.Clear(context.Background(), f.customer.ID)

	requireKind(t, err, apperrors.KindNotFound)
}

func TestAddItemRejectsOverflowingQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	huge := math.MaxInt64 / 5000

	_, err := f.carts.AddItem(ctx, f.customer.ID, models.CartItemInput{ProductID: f.shirt.ID, Quantity: &huge})
	requireKind(t, err, apperrors.KindValidation)

	cart := f.addToCart(t, f.cap, 1, "")
	most := math.MaxInt
	_, err = f.carts.AddItem(ctx, f.customer.ID, models.CartItemInput{ProductID: f.cap.ID, Quantity: &most})
	requireKind(t, err, apperrors.KindValidation)

	_, err = f.carts.UpdateItem(ctx, f.customer.ID, cart.Items[0].ID, models.CartItemUpdate{Quantity: &huge})
	requireKind(t, err, apperrors.KindValidation)

	cart, err = f.carts.Get(ctx, f.customer.ID)
	require.NoError(t, err)
	assertTotals(t, cart)
	assert.Equal(t, 1, cart.TotalQuantity)
	assert.Equal(t, int64(5000), cart.TotalPrice)
}

// cartCreatedMeanwhile reports no cart on its first lookup after letting
// another request create one.
type cartCreatedMeanwhile struct {
	services.CartStore
	other func()
}

func (c *cartCreatedMeanwhile) FindByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	if c.other != nil {
		other := c.other
		c.other = nil
		other()
		return nil, apperrors.NotFound("cart not found")
	}
	return c.CartStore.FindByUser(ctx, userID)
}

func TestAddItemWhenCartCreatedConcurrently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	carts := &cartCreatedMeanwhile{
		CartStore: f.stores.Carts,
		other:     func() { f.addToCart(t, f.cap, 1, "") },
	}
	racing := services.NewCartService(carts, f.stores.Products)
	two := 2

	cart, err := racing.AddItem(ctx, f.customer.ID, models.CartItemInput{ProductID: f.shirt.ID, Quantity: &two})

	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, int64(25000), cart.TotalPrice)
	assertTotals(t, cart)
}
