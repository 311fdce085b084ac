package controllers

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/codewithkin/TengaPOS/models"
)

// generateReceiptPDF renders a sale receipt from the line item
// snapshots, so the receipt stays correct even after catalog edits.
func generateReceiptPDF(sale *models.Sale, business *models.Business) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, business.BusinessName, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Receipt #: %d", sale.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", sale.CreatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")

	if sale.Customer.Name != "" {
		line := sale.Customer.Name
		if sale.Customer.Phone != "" {
			line += " - " + sale.Customer.Phone
		}
		pdf.CellFormat(0, 8, fmt.Sprintf("Customer: %s", line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(80, 10, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 10, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 10, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 10, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, item := range sale.Items {
		pdf.CellFormat(80, 10, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 10, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 10, fmt.Sprintf("$%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 10, fmt.Sprintf("$%.2f", item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total (USD): $%.2f", sale.Total), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total (ZiG): %.2f ZiG", sale.ZigTotal), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Payment Method: %s", sale.PaymentMethod), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
