package http

import (
	"io"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"

	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var orderSheetHeader = []string{
	"Order ID", "Customer ID", "Driver ID", "Status", "Total", "Order Date", "Delivery Address",
}

// WriteOrdersWorkbook renders orders as a single "Orders" sheet.
func WriteOrdersWorkbook(w io.Writer, orders []queries.OrderSummaryView) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, title := range orderSheetHeader {
		header.AddCell().SetString(title)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(o.ID.String())
		row.AddCell().SetString(o.CustomerID.String())
		driverCell := row.AddCell()
		if o.DriverID != nil {
			driverCell.SetString(o.DriverID.String())
		}
		row.AddCell().SetString(o.Status)
		total, _ := o.Total.Float64()
		row.AddCell().SetFloat(total)
		row.AddCell().SetString(o.OrderDate.UTC().Format(time.RFC3339))
		row.AddCell().SetString(o.DeliveryAddress)
	}

	return file.Write(w)
}
