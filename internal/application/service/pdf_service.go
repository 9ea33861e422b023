package service

import (
	"context"

	"github.com/shopbill/billing-api/internal/domain/enum"
	"github.com/shopbill/billing-api/internal/domain/repository"
	"github.com/shopbill/billing-api/pkg/apperror"
	"github.com/shopbill/billing-api/pkg/pdf"
)

// PDFService exports bills and customer ledgers as PDF files.
type PDFService struct {
	billRepo  repository.BillRepository
	ledger    *LedgerService
	customers repository.CustomerRepository
	generator *pdf.Generator
}

// NewPDFService creates a new PDF export service.
func NewPDFService(
	billRepo repository.BillRepository,
	customers repository.CustomerRepository,
	ledger *LedgerService,
	generator *pdf.Generator,
) *PDFService {
	return &PDFService{
		billRepo:  billRepo,
		ledger:    ledger,
		customers: customers,
		generator: generator,
	}
}

// ExportBill renders a finalized bill invoice to disk and returns the file
// path. Only FINALIZED bills export; once payments move the bill on, the
// invoice has already been issued.
func (s *PDFService) ExportBill(ctx context.Context, billID uint) (string, error) {
	bill, err := s.billRepo.GetWithDetails(ctx, billID)
	if err != nil {
		return "", err
	}
	if bill == nil {
		return "", apperror.NewNotFoundError("Bill")
	}
	if bill.Status != enum.BillStatusFinalized {
		return "", apperror.NewInvalidStateError("Bill must be finalized before exporting PDF")
	}

	doc := &pdf.BillDocument{
		BillID:     bill.ID,
		BillType:   bill.BillType.String(),
		GSTRate:    bill.GSTRate,
		Subtotal:   bill.Subtotal,
		GSTAmount:  bill.GSTAmount,
		GrandTotal: bill.TotalAmount,
	}
	if bill.InvoiceNumber != nil {
		doc.InvoiceNumber = *bill.InvoiceNumber
	}
	if bill.Customer != nil {
		doc.CustomerName = bill.Customer.Name
		if bill.Customer.Phone != nil {
			doc.CustomerPhone = *bill.Customer.Phone
		}
	}
	for _, item := range bill.Items {
		doc.Lines = append(doc.Lines, pdf.BillLine{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Subtotal: item.Subtotal,
		})
	}

	path, err := s.generator.BillPDF(doc)
	if err != nil {
		return "", apperror.NewUnavailableError("PDF generation failed: " + err.Error())
	}
	return path, nil
}

// ExportLedger renders a customer's ledger statement to disk and returns
// the file path.
func (s *PDFService) ExportLedger(ctx context.Context, customerID uint) (string, error) {
	ledger, err := s.ledger.GetLedger(ctx, customerID)
	if err != nil {
		return "", err
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", apperror.NewNotFoundError("Customer")
	}

	doc := &pdf.LedgerDocument{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
	}
	if customer.Phone != nil {
		doc.CustomerPhone = *customer.Phone
	}
	for _, entry := range ledger.Entries {
		doc.Rows = append(doc.Rows, pdf.LedgerRow{
			Date:    entry.Date,
			Type:    entry.EntryType,
			Debit:   entry.Debit,
			Credit:  entry.Credit,
			Balance: entry.Balance,
		})
	}

	path, err := s.generator.LedgerPDF(doc)
	if err != nil {
		return "", apperror.NewUnavailableError("PDF generation failed: " + err.Error())
	}
	return path, nil
}
