package models

import (
	"strings"
	"time"
)

type SelectedOptions struct {
	Color string `gorm:"size:64" json:"color"`
	Size  string `gorm:"size:64" json:"size"`
}

// Normalize trims both options so that "M" and " M " select the same line.
func (o SelectedOptions) Normalize() SelectedOptions {
	return SelectedOptions{
		Color: strings.TrimSpace(o.Color),
		Size:  strings.TrimSpace(o.Size),
	}
}

type CartItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CartID          uint            `gorm:"index;not null" json:"-"`
	ProductID       uint            `gorm:"not null" json:"productId"`
	Product         *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Price           int64           `gorm:"not null" json:"price"`
	SelectedOptions SelectedOptions `gorm:"embedded;embeddedPrefix:option_" json:"selectedOptions"`
	CreatedAt       time.Time       `json:"addedAt"`
	UpdatedAt       time.Time       `json:"-"`
}

// Cart is the single active cart of a user. TotalQuantity and TotalPrice
// always equal the sums over Items after Recalculate.
type Cart struct {
	ID            uint       `gorm:"primaryKey" json:"id,omitempty"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Items         []CartItem `gorm:"foreignKey:CartID" json:"items"`
	TotalQuantity int        `gorm:"not null;default:0" json:"totalQuantity"`
	TotalPrice    int64      `gorm:"not null;default:0" json:"totalPrice"`
	CreatedAt     time.Time  `json:"createdAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt,omitempty"`
}

// Recalculate refreshes the totals from the lines. It leaves them untouched
// and returns ErrAmountOverflow when a sum does not fit.
func (c *Cart) Recalculate() error {
	quantity, price := 0, int64(0)
	for _, item := range c.Items {
		var err error
		if quantity, err = AddQuantity(quantity, item.Quantity); err != nil {
			return err
		}
		line, err := LineTotal(item.Price, item.Quantity)
		if err != nil {
			return err
		}
		if price, err = SumAmounts(price, line); err != nil {
			return err
		}
	}
	c.TotalQuantity = quantity
	c.TotalPrice = price
	return nil
}

// FindLine returns the index of the line holding productID with the same
// options, or -1.
func (c *Cart) FindLine(productID uint, options SelectedOptions) int {
	options = options.Normalize()
	for i, item := range c.Items {
		if item.ProductID == productID && item.SelectedOptions.Normalize() == options {
			return i
		}
	}
	return -1
}

func (c *Cart) ItemIndex(itemID uint) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Cart) Empty() {
	c.Items = []CartItem{}
	c.TotalQuantity = 0
	c.TotalPrice = 0
}

type CartItemInput struct {
	ProductID       uint            `json:"productId"`
	Quantity        *int            `json:"quantity"`
	SelectedOptions SelectedOptions `json:"selectedOptions"`
}

type CartItemUpdate struct {
	Quantity *int `json:"quantity"`
}
