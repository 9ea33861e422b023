// Package pdf renders bill invoices and customer ledger statements as
// A4 documents on disk.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Seller is the shop identity printed in the invoice header.
type Seller struct {
	Name    string
	Address string
	GSTIN   string
}

// BillLine is one item row on a rendered invoice.
type BillLine struct {
	ItemName string
	Quantity decimal.Decimal
	Rate     decimal.Decimal
	Subtotal decimal.Decimal
}

// BillDocument carries everything an invoice rendering needs.
type BillDocument struct {
	BillID        uint
	InvoiceNumber string
	BillType      string
	GSTRate       decimal.Decimal
	CustomerName  string
	CustomerPhone string
	Lines         []BillLine
	Subtotal      decimal.Decimal
	GSTAmount     decimal.Decimal
	GrandTotal    decimal.Decimal
}

// LedgerRow is one rendered ledger statement row.
type LedgerRow struct {
	Date    time.Time
	Type    string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Balance decimal.Decimal
}

// LedgerDocument carries a customer ledger statement for rendering.
type LedgerDocument struct {
	CustomerID    uint
	CustomerName  string
	CustomerPhone string
	Rows          []LedgerRow
}

// Generator writes invoice and ledger PDFs into a fixed output directory.
type Generator struct {
	outputDir string
	seller    Seller
}

// NewGenerator creates a PDF generator writing into outputDir.
func NewGenerator(outputDir string, seller Seller) *Generator {
	return &Generator{outputDir: outputDir, seller: seller}
}

// BillPDF renders a finalized bill as a tax invoice and returns the file path.
func (g *Generator) BillPDF(doc *BillDocument) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "TAX INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, fmt.Sprintf("Bill ID: %d", doc.BillID))
	pdf.Ln(5)
	if doc.InvoiceNumber != "" {
		pdf.Cell(0, 5, "Invoice No: "+doc.InvoiceNumber)
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, "Invoice Date: "+time.Now().Format("02-01-2006"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 5, "Seller:")
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, g.seller.Name)
	pdf.Ln(5)
	pdf.Cell(0, 5, g.seller.Address)
	pdf.Ln(5)
	if g.seller.GSTIN != "" {
		pdf.Cell(0, 5, "GSTIN: "+g.seller.GSTIN)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	if doc.CustomerName != "" {
		pdf.Cell(0, 5, "Customer: "+doc.CustomerName)
		pdf.Ln(5)
	}
	if doc.CustomerPhone != "" {
		pdf.Cell(0, 5, "Phone: "+doc.CustomerPhone)
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, "Bill Type: "+doc.BillType)
	pdf.Ln(9)

	// Item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Rate", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range doc.Lines {
		pdf.CellFormat(80, 6, line.ItemName, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, line.Quantity.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, line.Rate.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, line.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.CellFormat(140, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, doc.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if doc.BillType == "GST" {
		pdf.CellFormat(140, 6, fmt.Sprintf("GST @ %s%%:", doc.GSTRate.StringFixed(0)), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, doc.GSTAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(140, 7, "Grand Total:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, doc.GrandTotal.StringFixed(2), "T", 1, "R", false, 0, "")

	path := filepath.Join(g.outputDir, fmt.Sprintf("bill_%d.pdf", doc.BillID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write bill pdf: %w", err)
	}
	return path, nil
}

// LedgerPDF renders a customer ledger statement and returns the file path.
func (g *Generator) LedgerPDF(doc *LedgerDocument) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Customer Ledger Statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, "Customer: "+doc.CustomerName)
	pdf.Ln(5)
	phone := doc.CustomerPhone
	if phone == "" {
		phone = "-"
	}
	pdf.Cell(0, 5, "Phone: "+phone)
	pdf.Ln(5)
	pdf.Cell(0, 5, "Generated on: "+time.Now().Format("02-01-2006"))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 6, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, "Type", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, "Debit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Credit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(45, 6, "Balance", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range doc.Rows {
		pdf.CellFormat(30, 6, row.Date.Format("02-01-2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, row.Type, "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, row.Debit.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, row.Credit.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, row.Balance.StringFixed(2), "", 1, "R", false, 0, "")
	}

	path := filepath.Join(g.outputDir, fmt.Sprintf("ledger_customer_%d.pdf", doc.CustomerID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write ledger pdf: %w", err)
	}
	return path, nil
}
