package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestOrdersWorkbook(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	data, err := OrdersWorkbook([]OrderRow{{
		OrderID:         "o-1",
		CreatedAt:       created,
		Status:          "paid",
		ContactName:     "Anna",
		ContactPhone:    "+79991234567",
		DeliveryMethod:  "courier",
		DeliveryAddress: "Main st 1",
		ProductName:     "Lamp",
		Quantity:        2,
		Price:           "12.50",
		Subtotal:        "25.00",
	}})
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Order", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Subtotal", sheet.Rows[0].Cells[10].Value)

	row := sheet.Rows[1]
	assert.Equal(t, "o-1", row.Cells[0].Value)
	assert.Equal(t, "2026-03-14 09:30:00", row.Cells[1].Value)
	assert.Equal(t, "+79991234567", row.Cells[4].Value)
	assert.Equal(t, "2", row.Cells[8].Value)
	assert.Equal(t, "25.00", row.Cells[10].Value)
}

func TestOrdersWorkbook_HeaderOnly(t *testing.T) {
	data, err := OrdersWorkbook(nil)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	assert.Len(t, file.Sheets[0].Rows, 1)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "orders-20260102-030405.xlsx", Filename("orders", now))
}
