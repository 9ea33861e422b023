package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/repository"
	"github.com/shopbill/billing-api/pkg/apperror"
)

// LedgerEntry is one row of a customer ledger: a bill debits the account,
// a payment credits it.
type LedgerEntry struct {
	Date      time.Time       `json:"date"`
	EntryType string          `json:"entry_type"` // BILL or PAYMENT
	Reference string          `json:"reference"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

// Ledger is the full projection for one customer.
type Ledger struct {
	CustomerID     uint            `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	Entries        []LedgerEntry   `json:"entries"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// LedgerService projects a customer's bills and payments into a dated
// ledger with a running balance. The projection is derived on every read,
// never stored, so it cannot drift from the underlying records.
type LedgerService struct {
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(customerRepo repository.CustomerRepository, paymentRepo repository.PaymentRepository) *LedgerService {
	return &LedgerService{customerRepo: customerRepo, paymentRepo: paymentRepo}
}

// GetLedger builds the ledger for one customer. Entries are ordered by date
// ascending; a bill and a payment on the same date keep bill-before-payment
// order so the projection is stable across reads.
func (s *LedgerService) GetLedger(ctx context.Context, customerID uint) (*Ledger, error) {
	customer, err := s.customerRepo.GetWithBills(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	payments, err := s.paymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entries := make([]LedgerEntry, 0, len(customer.Bills)+len(payments))
	for _, bill := range customer.Bills {
		reference := "Bill #" + strconv.FormatUint(uint64(bill.ID), 10)
		if bill.InvoiceNumber != nil {
			reference = *bill.InvoiceNumber
		}
		entries = append(entries, LedgerEntry{
			Date:      bill.CreatedAt,
			EntryType: "BILL",
			Reference: reference,
			Debit:     bill.TotalAmount,
			Credit:    decimal.Zero,
		})
	}
	for _, payment := range payments {
		entries = append(entries, LedgerEntry{
			Date:      payment.CreatedAt,
			EntryType: "PAYMENT",
			Reference: "Payment #" + strconv.FormatUint(uint64(payment.ID), 10),
			Debit:     decimal.Zero,
			Credit:    payment.Amount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	balance := decimal.Zero
	for i := range entries {
		balance = balance.Add(entries[i].Debit).Sub(entries[i].Credit)
		entries[i].Balance = balance
	}

	return &Ledger{
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		Entries:        entries,
		ClosingBalance: balance,
	}, nil
}

