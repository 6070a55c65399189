package http

import (
	"bytes"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestWriteOrdersWorkbook(t *testing.T) {
	// Arrange
	driverID := uuid.New()
	orders := []queries.OrderSummaryView{
		{
			ID:              uuid.New(),
			CustomerID:      uuid.New(),
			DriverID:        &driverID,
			Status:          "DRIVER_ASSIGNED",
			Total:           decimal.RequireFromString("245"),
			OrderDate:       time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
			DeliveryAddress: "1 Harbour Rd",
		},
		{
			ID:         uuid.New(),
			CustomerID: uuid.New(),
			Status:     "PENDING",
			Total:      decimal.RequireFromString("212.50"),
			OrderDate:  time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
		},
	}
	var buf bytes.Buffer

	// Act
	require.NoError(t, WriteOrdersWorkbook(&buf, orders))

	// Assert
	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "Order ID", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Delivery Address", sheet.Rows[0].Cells[6].Value)

	first := sheet.Rows[1].Cells
	assert.Equal(t, orders[0].ID.String(), first[0].Value)
	assert.Equal(t, driverID.String(), first[2].Value)
	assert.Equal(t, "DRIVER_ASSIGNED", first[3].Value)
	assert.Equal(t, "2025-03-10T12:30:00Z", first[5].Value)
	assert.Equal(t, "1 Harbour Rd", first[6].Value)

	second := sheet.Rows[2].Cells
	assert.Empty(t, second[2].Value)
	assert.Equal(t, "PENDING", second[3].Value)
}

func TestWriteOrdersWorkbook_EmptyListKeepsHeader(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteOrdersWorkbook(&buf, nil))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets[0].Rows, 1)
}
