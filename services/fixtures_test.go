package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/initializers"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/payments"
	"github.com/shopping-mall/mall-api/services"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	calls    int
	expected int64
	paidAt   int64
	err      error
}

func (f *fakeVerifier) Verify(_ context.Context, transactionID string, expected int64) (*payments.Verification, error) {
	f.calls++
	f.expected = expected
	if f.err != nil {
		return nil, f.err
	}
	return &payments.Verification{Payment: &payments.Payment{ImpUID: transactionID, Status: "paid", PaidAt: f.paidAt}}, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) OrderPlaced(_ context.Context, email, _ string, _ *models.Order) error {
	f.sent = append(f.sent, email)
	return f.err
}

type failingReset struct {
	services.CartStore
}

func (failingReset) Reset(context.Context, uint) error {
	return errors.New("connection reset")
}

type fixture struct {
	stores   *initializers.Stores
	users    *services.UserService
	products *services.ProductService
	carts    *services.CartService
	orders   *services.OrderService
	verifier *fakeVerifier
	notifier *fakeNotifier

	customer *models.User
	admin    *models.User
	shirt    *models.Product
	cap      *models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	stores, err := initializers.OpenStores(&initializers.Config{DBDriver: initializers.DriverMemory})
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })
	f := &fixture{
		stores:   stores,
		verifier: &fakeVerifier{},
		notifier: &fakeNotifier{},
	}
	f.users = services.NewUserService(stores.Users)
	f.products = services.NewProductService(stores.Products, nil)
	f.carts = services.NewCartService(stores.Carts, stores.Products)
	f.orders = services.NewOrderService(stores.Orders, stores.Carts, stores.Users, f.verifier, f.notifier, services.PricingPolicy{})

	f.customer, err = f.users.Create(ctx, models.SignupData{Email: "kim@example.com", Name: "Kim", Password: "secret1"}, false)
	require.NoError(t, err)
	f.admin, err = f.users.Create(ctx, models.SignupData{Email: "admin@example.com", Name: "Admin", Password: "secret1", Role: models.RoleAdmin}, true)
	require.NoError(t, err)

	f.shirt = f.product(t, "top-001", "Linen shirt", 10000, models.CategoryTop)
	f.cap = f.product(t, "acc-001", "Cap", 5000, models.CategoryAccessory)
	return f
}

func (f *fixture) product(t *testing.T, sku, name string, price int64, category models.Category) *models.Product {
	t.Helper()
	product, err := f.products.Create(context.Background(), models.ProductInput{
		SKU: sku, Name: name, Price: &price, Category: category, Image: "https://cdn.example.com/" + sku + ".jpg",
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) session(user *models.User) models.Session {
	return models.Session{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
}

func (f *fixture) addToCart(t *testing.T, product *models.Product, quantity int, size string) *models.Cart {
	t.Helper()
	cart, err := f.carts.AddItem(context.Background(), f.customer.ID, models.CartItemInput{
		ProductID:       product.ID,
		Quantity:        &quantity,
		SelectedOptions: models.SelectedOptions{Size: size},
	})
	require.NoError(t, err)
	return cart
}

func checkoutRequest(status models.PaymentStatus, transactionID string) models.OrderRequest {
	return models.OrderRequest{
		Items: []models.OrderLineRequest{{ProductID: 1, Quantity: 1}},
		ShippingInfo: models.ShippingInfo{
			RecipientName: "Kim", Contact: "010-0000-0000", AddressLine1: "1 Main St",
			City: "Seoul", PostalCode: "04524", Country: "KR",
		},
		PaymentInfo: models.PaymentRequest{Method: models.PaymentMethodCard, Status: status, TransactionID: transactionID},
	}
}

func requireKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind.String(), apperrors.KindOf(err).String(), err.Error())
}
