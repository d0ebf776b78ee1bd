package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopping-mall/mall-api/models"
	"github.com/tealeg/xlsx"
)

const exportTimeLayout = "2006-01-02 15:04:05"

var orderExportHeaders = []string{
	"ID", "UserID", "Email", "Status", "Items", "Quantity",
	"Subtotal", "ShippingFee", "Discount", "TotalAmount",
	"PaymentMethod", "PaymentStatus", "TransactionID", "PaidAt",
	"Recipient", "Contact", "Address", "CreatedAt",
}

// WriteOrdersWorkbook writes one row per order to an xlsx workbook.
func WriteOrdersWorkbook(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range orderExportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()

		email := ""
		if o.User != nil {
			email = o.User.Email
		}
		names := make([]string, 0, len(o.Items))
		quantity := 0
		for _, item := range o.Items {
			names = append(names, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
			quantity += item.Quantity
		}
		transactionID := ""
		if o.PaymentInfo.TransactionID != nil {
			transactionID = *o.PaymentInfo.TransactionID
		}
		paidAt := ""
		if o.PaymentInfo.PaidAt != nil {
			paidAt = o.PaymentInfo.PaidAt.Format(exportTimeLayout)
		}
		shipping := o.ShippingInfo

		row.AddCell().SetValue(int64(o.ID))
		row.AddCell().SetValue(int64(o.UserID))
		row.AddCell().SetValue(email)
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(strings.Join(names, ", "))
		row.AddCell().SetValue(quantity)
		row.AddCell().SetValue(o.Subtotal)
		row.AddCell().SetValue(o.ShippingFee)
		row.AddCell().SetValue(o.Discount)
		row.AddCell().SetValue(o.TotalAmount)
		row.AddCell().SetValue(string(o.PaymentInfo.Method))
		row.AddCell().SetValue(string(o.PaymentInfo.Status))
		row.AddCell().SetValue(transactionID)
		row.AddCell().SetValue(paidAt)
		row.AddCell().SetValue(shipping.RecipientName)
		row.AddCell().SetValue(shipping.Contact)
		row.AddCell().SetValue(strings.Join(nonEmpty(
			shipping.AddressLine1, shipping.AddressLine2, shipping.City, shipping.State, shipping.PostalCode, shipping.Country,
		), " "))
		row.AddCell().SetValue(o.CreatedAt.Format(exportTimeLayout))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
