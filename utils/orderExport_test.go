package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopping-mall/mall-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestWriteOrdersWorkbook(t *testing.T) {
	txID := "imp_123"
	paidAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	orders := []models.Order{{
		ID:     7,
		UserID: 3,
		User:   &models.User{Email: "kim@example.com"},
		Items: []models.OrderItem{
			{Name: "Linen shirt", Price: 10000, Quantity: 2},
			{Name: "Cap", Price: 5000, Quantity: 1},
		},
		ShippingInfo: models.ShippingInfo{RecipientName: "Kim", Contact: "010-0000-0000", AddressLine1: "1 Main St", City: "Seoul", PostalCode: "04524", Country: "KR"},
		PaymentInfo:  models.PaymentInfo{Method: models.PaymentMethodCard, Status: models.PaymentStatusPaid, TransactionID: &txID, PaidAt: &paidAt},
		Subtotal:     25000,
		TotalAmount:  25000,
		Status:       models.OrderStatusPaid,
		CreatedAt:    paidAt,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersWorkbook(&buf, orders))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	rows := file.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0].Cells[0].Value)
	assert.Equal(t, len(orderExportHeaders), len(rows[0].Cells))

	cells := rows[1].Cells
	assert.Equal(t, "7", cells[0].Value)
	assert.Equal(t, "kim@example.com", cells[2].Value)
	assert.Equal(t, "paid", cells[3].Value)
	assert.Equal(t, "Linen shirt x2, Cap x1", cells[4].Value)
	assert.Equal(t, "3", cells[5].Value)
	assert.Equal(t, "25000", cells[9].Value)
	assert.Equal(t, "imp_123", cells[12].Value)
	assert.Equal(t, "2024-03-01 09:30:00", cells[13].Value)
	assert.Equal(t, "1 Main St Seoul 04524 KR", cells[16].Value)
}

func TestWriteOrdersWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersWorkbook(&buf, nil))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, file.Sheets[0].Rows, 1)
}
