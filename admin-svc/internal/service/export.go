package service

import (
	"fmt"
	"io"
	"strings"

	"fastgrab/admin-svc/internal/domain"

	"github.com/tealeg/xlsx"
)

const timeLayout = "2006-01-02 15:04:05"

var exportHeaders = []string{
	"Order ID", "Created At", "Status", "Customer", "Email", "Phone", "Address",
	"Items", "Total", "Card Type", "Card Number", "Verified At",
}

// WriteOrdersXLSX writes one row per order. Card numbers are already masked in
// the store and are exported as-is.
func WriteOrdersXLSX(w io.Writer, orders []domain.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.OrderID)
		row.AddCell().SetValue(o.CreatedAt.Format(timeLayout))
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(o.UserDetails.Name)
		row.AddCell().SetValue(o.UserDetails.Email)
		row.AddCell().SetValue(o.UserDetails.Phone)
		row.AddCell().SetValue(o.UserDetails.Address)
		row.AddCell().SetValue(describeItems(o.Items))
		row.AddCell().SetValue(o.TotalAmount.StringFixed(2))
		row.AddCell().SetValue(o.PaymentDetails.CardType)
		row.AddCell().SetValue(o.PaymentDetails.CardNumber)
		verified := ""
		if o.VerifiedAt != nil {
			verified = o.VerifiedAt.Format(timeLayout)
		}
		row.AddCell().SetValue(verified)
	}

	return file.Write(w)
}

func describeItems(items []domain.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(parts, "; ")
}
