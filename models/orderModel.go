package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions lists where each status may move next. Delivered and
// cancelled orders are final.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether an order in s may be moved to next.
// Re-applying the current status is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodKakaoPay     PaymentMethod = "kakao_pay"
	PaymentMethodNaverPay     PaymentMethod = "naver_pay"
	PaymentMethodPaypal       PaymentMethod = "paypal"
	PaymentMethodCash         PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type ShippingInfo struct {
	RecipientName string `gorm:"size:100" json:"recipientName" binding:"required"`
	Contact       string `gorm:"size:50" json:"contact" binding:"required"`
	AddressLine1  string `json:"addressLine1" binding:"required"`
	AddressLine2  string `json:"addressLine2"`
	City          string `gorm:"size:100" json:"city" binding:"required"`
	State         string `gorm:"size:100" json:"state"`
	PostalCode    string `gorm:"size:20" json:"postalCode" binding:"required"`
	Country       string `gorm:"size:100" json:"country" binding:"required"`
}

type PaymentInfo struct {
	Method        PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TransactionID *string       `gorm:"size:191;uniqueIndex" json:"transactionId,omitempty"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
}

type OrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"-"`
	OrderID         uint            `gorm:"index;not null" json:"-"`
	ProductID       uint            `gorm:"not null" json:"product"`
	Name            string          `gorm:"not null" json:"name"`
	Image           string          `json:"image"`
	Price           int64           `gorm:"not null" json:"price"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	SelectedOptions SelectedOptions `gorm:"embedded;embeddedPrefix:option_" json:"selectedOptions"`
}

// Order is a snapshot of a purchase. Lines carry their own copy of the
// product data so later catalog edits do not change past orders.
type Order struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"index;not null" json:"userId"`
	User         *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items        []OrderItem  `gorm:"foreignKey:OrderID" json:"items"`
	ShippingInfo ShippingInfo `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingInfo"`
	PaymentInfo  PaymentInfo  `gorm:"embedded;embeddedPrefix:payment_" json:"paymentInfo"`
	Subtotal     int64        `gorm:"not null" json:"subtotal"`
	ShippingFee  int64        `gorm:"not null;default:0" json:"shippingFee"`
	Discount     int64        `gorm:"not null;default:0" json:"discount"`
	TotalAmount  int64        `gorm:"not null" json:"totalAmount"`
	Status       OrderStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DeliveredAt  *time.Time   `json:"deliveredAt,omitempty"`
	CreatedAt    time.Time    `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type OrderTotals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shippingFee"`
	Discount    int64 `json:"discount"`
	TotalAmount int64 `json:"totalAmount"`
}

// OrderFilter narrows the admin listing. A Limit of zero means no limit.
type OrderFilter struct {
	Status OrderStatus
	Offset int
	Limit  int
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodKakaoPay,
		PaymentMethodNaverPay, PaymentMethodPaypal, PaymentMethodCash:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// OrderLineRequest is a line as the checkout page sends it. The stored
// lines are rebuilt from the persisted cart.
type OrderLineRequest struct {
	ProductID       uint            `json:"product"`
	Quantity        int             `json:"quantity"`
	SelectedOptions SelectedOptions `json:"selectedOptions"`
}

type PaymentRequest struct {
	Method        PaymentMethod `json:"method" binding:"required"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId"`
	PaidAt        *time.Time    `json:"paidAt"`
}

// OrderRequest is the checkout payload. The totals are what the client
// displayed; the server computes its own.
type OrderRequest struct {
	Items        []OrderLineRequest `json:"items"`
	ShippingInfo ShippingInfo       `json:"shippingInfo" binding:"required"`
	PaymentInfo  PaymentRequest     `json:"paymentInfo" binding:"required"`
	Subtotal     *int64             `json:"subtotal"`
	ShippingFee  *int64             `json:"shippingFee"`
	Discount     *int64             `json:"discount"`
	TotalAmount  *int64             `json:"totalAmount"`
}

type OrderStatusUpdate struct {
	Status      OrderStatus `json:"status" binding:"required"`
	DeliveredAt *time.Time  `json:"deliveredAt"`
}
