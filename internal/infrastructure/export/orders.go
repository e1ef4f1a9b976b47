// Package export renders order data as spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/tealeg/xlsx"
)

// ContentTypeXLSX is the media type of the generated workbooks
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const timeLayout = "2006-01-02 15:04:05"

// OrderRow is one order line in a seller export
type OrderRow struct {
	OrderID         string
	CreatedAt       time.Time
	Status          string
	ContactName     string
	ContactPhone    string
	DeliveryMethod  string
	DeliveryAddress string
	ProductName     string
	Quantity        int
	Price           string
	Subtotal        string
}

var orderHeaders = []string{
	"Order", "Created", "Status", "Contact", "Phone", "Delivery", "Address",
	"Product", "Quantity", "Price", "Subtotal",
}

// OrdersWorkbook writes the rows to a single-sheet xlsx document
func OrdersWorkbook(rows []OrderRow) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range orderHeaders {
		header.AddCell().SetString(h)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r.OrderID)
		row.AddCell().SetString(r.CreatedAt.UTC().Format(timeLayout))
		row.AddCell().SetString(r.Status)
		row.AddCell().SetString(r.ContactName)
		row.AddCell().SetString(r.ContactPhone)
		row.AddCell().SetString(r.DeliveryMethod)
		row.AddCell().SetString(r.DeliveryAddress)
		row.AddCell().SetString(r.ProductName)
		row.AddCell().SetInt(r.Quantity)
		row.AddCell().SetString(r.Price)
		row.AddCell().SetString(r.Subtotal)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns a download name stamped with now
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, now.UTC().Format("20060102-150405"))
}
