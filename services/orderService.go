package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/payments"
	"github.com/shopping-mall/mall-api/utils"
)

const DefaultOrderPageSize = 20

const (
	msgDuplicateOrder = "payment already processed; duplicate order prevented"
	msgOrderTooLarge  = "order total is too large"
)

type PaymentVerifier interface {
	Verify(ctx context.Context, transactionID string, expected int64) (*payments.Verification, error)
}

type OrderNotifier interface {
	OrderPlaced(ctx context.Context, email, name string, order *models.Order) error
}

// PricingPolicy derives the charges of an order from its subtotal. A flat
// shipping fee is waived once the subtotal reaches FreeShippingThreshold
// (zero disables the waiver).
type PricingPolicy struct {
	ShippingFee           int64
	FreeShippingThreshold int64
}

func (p PricingPolicy) Totals(subtotal int64) (models.OrderTotals, error) {
	totals := models.OrderTotals{Subtotal: subtotal}
	if subtotal > 0 && (p.FreeShippingThreshold <= 0 || subtotal < p.FreeShippingThreshold) {
		totals.ShippingFee = p.ShippingFee
	}
	total, err := models.SumAmounts(totals.Subtotal, totals.ShippingFee)
	if err != nil {
		return models.OrderTotals{}, apperrors.Validation(msgOrderTooLarge)
	}
	totals.TotalAmount = total - totals.Discount
	return totals, nil
}

type OrderPage struct {
	Orders     []models.Order
	Total      int64
	Pagination utils.Pagination
}

type OrderService struct {
	orders   OrderStore
	carts    CartStore
	users    UserStore
	verifier PaymentVerifier
	notifier OrderNotifier
	pricing  PricingPolicy
	now      func() time.Time
}

// NewOrderService wires the checkout workflow. notifier may be nil.
func NewOrderService(orders OrderStore, carts CartStore, users UserStore, verifier PaymentVerifier, notifier OrderNotifier, pricing PricingPolicy) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		users:    users,
		verifier: verifier,
		notifier: notifier,
		pricing:  pricing,
		now:      time.Now,
	}
}

// PlaceOrder turns the user's cart into an order.
//
// A transaction id that was already used returns the existing order with a
// Conflict. Paid orders are checked against the gateway for the amount
// computed here, never the amount the client sent. The cart is emptied once
// the order is stored; if that fails the order is kept and the error is
// returned.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, input models.OrderRequest) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.Validation("an order must contain at least one item")
	}

	transactionID := strings.TrimSpace(input.PaymentInfo.TransactionID)
	if transactionID != "" {
		existing, err := s.orders.FindByTransactionID(ctx, transactionID)
		if err == nil {
			return nil, apperrors.Conflict(msgDuplicateOrder, existing)
		}
		if !apperrors.Is(err, apperrors.KindNotFound) {
			return nil, err
		}
	}

	payment, err := newPaymentInfo(input.PaymentInfo, transactionID)
	if err != nil {
		return nil, err
	}

	items, totals, err := s.priceCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(input.Items) != len(items) {
		slog.Warn("checkout lines differ from cart", "user_id", userID, "requested", len(input.Items), "cart", len(items))
	}
	if input.TotalAmount != nil && *input.TotalAmount != totals.TotalAmount {
		slog.Warn("client total differs from computed total",
			"user_id", userID, "client_total", *input.TotalAmount, "total", totals.TotalAmount)
	}

	if payment.Status == models.PaymentStatusPaid && payment.TransactionID != nil {
		verification, err := s.verifier.Verify(ctx, transactionID, totals.TotalAmount)
		if err != nil {
			if _, ok := apperrors.As(err); !ok {
				err = apperrors.VerificationFailed("payment verification failed", err)
			}
			return nil, err
		}
		if verification != nil {
			if paidAt := verification.Payment.PaidTime(); paidAt != nil {
				payment.PaidAt = paidAt
			}
		}
	}
	if payment.Status == models.PaymentStatusPaid && payment.PaidAt == nil {
		now := s.now()
		payment.PaidAt = &now
	}

	order := &models.Order{
		UserID:       userID,
		Items:        items,
		ShippingInfo: trimShipping(input.ShippingInfo),
		PaymentInfo:  payment,
		Subtotal:     totals.Subtotal,
		ShippingFee:  totals.ShippingFee,
		Discount:     totals.Discount,
		TotalAmount:  totals.TotalAmount,
		Status:       models.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) && transactionID != "" {
			existing, findErr := s.orders.FindByTransactionID(ctx, transactionID)
			if findErr != nil {
				return nil, err
			}
			return nil, apperrors.Conflict(msgDuplicateOrder, existing)
		}
		return nil, err
	}

	if err := s.carts.Reset(ctx, userID); err != nil {
		slog.Error("order placed but cart was not cleared", "order_id", order.ID, "user_id", userID, "error", err)
		return nil, apperrors.Internal("order was placed but the cart could not be cleared", err)
	}

	slog.Info("order placed", "order_id", order.ID, "user_id", userID, "total", order.TotalAmount)
	s.notify(ctx, order)
	return order, nil
}

func newPaymentInfo(input models.PaymentRequest, transactionID string) (models.PaymentInfo, error) {
	payment := models.PaymentInfo{
		Method: input.Method,
		Status: input.Status,
		PaidAt: input.PaidAt,
	}
	if !payment.Method.Valid() {
		return payment, apperrors.Validation("invalid payment method")
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	if !payment.Status.Valid() {
		return payment, apperrors.Validation("invalid payment status")
	}
	if transactionID != "" {
		payment.TransactionID = &transactionID
	}
	return payment, nil
}

// priceCart snapshots the persisted cart into order lines and prices them.
func (s *OrderService) priceCart(ctx context.Context, userID uint) ([]models.OrderItem, models.OrderTotals, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, models.OrderTotals{}, apperrors.Validation("cart is empty")
		}
		return nil, models.OrderTotals{}, err
	}
	if len(cart.Items) == 0 {
		return nil, models.OrderTotals{}, apperrors.Validation("cart is empty")
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	var subtotal int64
	for _, line := range cart.Items {
		if line.Product == nil {
			return nil, models.OrderTotals{}, apperrors.Validation(
				fmt.Sprintf("product %d is no longer available", line.ProductID))
		}
		items = append(items, models.OrderItem{
			ProductID:       line.ProductID,
			Name:            line.Product.Name,
			Image:           line.Product.Image,
			Price:           line.Price,
			Quantity:        line.Quantity,
			SelectedOptions: line.SelectedOptions,
		})
		lineTotal, err := models.LineTotal(line.Price, line.Quantity)
		if err != nil {
			return nil, models.OrderTotals{}, apperrors.Validation(msgOrderTooLarge)
		}
		if subtotal, err = models.SumAmounts(subtotal, lineTotal); err != nil {
			return nil, models.OrderTotals{}, apperrors.Validation(msgOrderTooLarge)
		}
	}
	totals, err := s.pricing.Totals(subtotal)
	if err != nil {
		return nil, models.OrderTotals{}, err
	}
	return items, totals, nil
}

func trimShipping(info models.ShippingInfo) models.ShippingInfo {
	return models.ShippingInfo{
		RecipientName: strings.TrimSpace(info.RecipientName),
		Contact:       strings.TrimSpace(info.Contact),
		AddressLine1:  strings.TrimSpace(info.AddressLine1),
		AddressLine2:  strings.TrimSpace(info.AddressLine2),
		City:          strings.TrimSpace(info.City),
		State:         strings.TrimSpace(info.State),
		PostalCode:    strings.TrimSpace(info.PostalCode),
		Country:       strings.TrimSpace(info.Country),
	}
}

func (s *OrderService) notify(ctx context.Context, order *models.Order) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		slog.Warn("order confirmation skipped", "order_id", order.ID, "error", err)
		return
	}
	if err := s.notifier.OrderPlaced(ctx, user.Email, user.Name, order); err != nil {
		slog.Warn("order confirmation failed", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func parseStatusFilter(status string) (models.OrderStatus, error) {
	filter := models.OrderStatus(strings.TrimSpace(status))
	if filter != "" && !filter.Valid() {
		return "", apperrors.Validation("invalid order status")
	}
	return filter, nil
}

// ListAll is the admin listing, newest first.
func (s *OrderService) ListAll(ctx context.Context, status string, page utils.Pagination) (*OrderPage, error) {
	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	orders, total, err := s.orders.List(ctx, models.OrderFilter{
		Status: filter,
		Offset: page.Offset(),
		Limit:  page.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Total: total, Pagination: page}, nil
}

// Get returns an order to its owner or to an admin.
func (s *OrderService) Get(ctx context.Context, viewer models.Session, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanAccessUser(order.UserID) {
		return nil, apperrors.Forbidden("you may only view your own orders")
	}
	return order, nil
}

// UpdateStatus moves an order along its lifecycle. Setting the current
// status again changes nothing; delivered orders get a delivery time.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, input models.OrderStatusUpdate) (*models.Order, error) {
	if !input.Status.Valid() {
		return nil, apperrors.Validation("invalid order status")
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(input.Status) {
		return nil, apperrors.InvalidTransition(
			fmt.Sprintf("cannot change order status from %s to %s", order.Status, input.Status))
	}
	if order.Status == input.Status && input.DeliveredAt == nil {
		return order, nil
	}

	deliveredAt := input.DeliveredAt
	if input.Status == models.OrderStatusDelivered && deliveredAt == nil && order.DeliveredAt == nil {
		now := s.now()
		deliveredAt = &now
	}

	updated, err := s.orders.UpdateStatus(ctx, id, input.Status, deliveredAt)
	if err != nil {
		return nil, err
	}
	slog.Info("order status updated", "order_id", id, "from", order.Status, "to", updated.Status)
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) (*models.Order, error) {
	return s.orders.Delete(ctx, id)
}

// Export writes every order matching status as an xlsx workbook.
func (s *OrderService) Export(ctx context.Context, w io.Writer, status string) error {
	filter, err := parseStatusFilter(status)
	if err != nil {
		return err
	}
	orders, _, err := s.orders.List(ctx, models.OrderFilter{Status: filter})
	if err != nil {
		return err
	}
	if err := utils.WriteOrdersWorkbook(w, orders); err != nil {
		return apperrors.Internal("failed to export orders", err)
	}
	return nil
}
