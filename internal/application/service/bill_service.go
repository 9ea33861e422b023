package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/entity"
	"github.com/shopbill/billing-api/internal/domain/enum"
	"github.com/shopbill/billing-api/internal/domain/repository"
	"github.com/shopbill/billing-api/pkg/apperror"
	"github.com/shopbill/billing-api/pkg/money"
	"github.com/shopbill/billing-api/pkg/pagination"
)

// BillService owns the bill lifecycle: creation, line items, finalize,
// payments and adjustments. Every mutating operation runs inside a
// transaction and takes a row lock on the bill, so concurrent requests
// against the same bill serialize.
type BillService struct {
	txManager      repository.TxManager
	billRepo       repository.BillRepository
	billItemRepo   repository.BillItemRepository
	paymentRepo    repository.PaymentRepository
	adjustmentRepo repository.AdjustmentRepository
	itemRepo       repository.ItemRepository
	customerRepo   repository.CustomerRepository
	sequencer      *InvoiceSequencer
	gstRate        decimal.Decimal
}

// NewBillService creates a new bill service. gstRatePercent is the tax
// percentage applied to GST-type bills at finalize.
func NewBillService(
	txManager repository.TxManager,
	billRepo repository.BillRepository,
	billItemRepo repository.BillItemRepository,
	paymentRepo repository.PaymentRepository,
	adjustmentRepo repository.AdjustmentRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	sequencer *InvoiceSequencer,
	gstRatePercent int,
) *BillService {
	return &BillService{
		txManager:      txManager,
		billRepo:       billRepo,
		billItemRepo:   billItemRepo,
		paymentRepo:    paymentRepo,
		adjustmentRepo: adjustmentRepo,
		itemRepo:       itemRepo,
		customerRepo:   customerRepo,
		sequencer:      sequencer,
		gstRate:        decimal.NewFromInt(int64(gstRatePercent)),
	}
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	CustomerID uint
	BillType   enum.BillType
	GSTIN      *string
}

// CreateBill opens a new empty bill for a customer. The GST rate is stamped
// on the bill at creation but no tax is computed until finalize.
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	gstRate := decimal.Zero
	if input.BillType == enum.BillTypeGST {
		gstRate = s.gstRate
	}

	bill := &entity.Bill{
		CustomerID:  input.CustomerID,
		BillType:    input.BillType,
		Status:      enum.BillStatusOpen,
		GSTRate:     gstRate,
		Subtotal:    decimal.Zero,
		GSTAmount:   decimal.Zero,
		TotalAmount: decimal.Zero,
		PaidAmount:  decimal.Zero,
		GSTIN:       input.GSTIN,
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	bill.Customer = customer
	return bill, nil
}

// AddItemInput represents a line item to append to an open bill
type AddItemInput struct {
	ItemName string
	Quantity decimal.Decimal
	Rate     *decimal.Decimal
	Unit     *string
}

// AddItem appends a line item to an OPEN bill. The catalog rate wins when the
// item is known; an explicit rate on a new item lazily registers it in the
// catalog. Totals are recomputed with zero GST, which only applies at
// finalize.
func (s *BillService) AddItem(ctx context.Context, billID uint, input *AddItemInput) (*entity.BillItem, error) {
	if !input.Quantity.IsPositive() {
		return nil, apperror.NewInvalidAmountError("Quantity must be positive")
	}

	var created *entity.BillItem
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		bill, err := s.lockOpenBill(ctx, billID)
		if err != nil {
			return err
		}

		name := strings.ToLower(strings.TrimSpace(input.ItemName))
		master, err := s.itemRepo.FindByName(ctx, name)
		if err != nil {
			return err
		}

		var rate decimal.Decimal
		unit := input.Unit
		switch {
		case master != nil:
			rate = master.Rate
			unit = master.Unit
		case input.Rate != nil:
			rate = money.Round2(*input.Rate)
			master = &entity.ItemMaster{Name: name, Rate: rate, Unit: unit}
			if err := s.itemRepo.Create(ctx, master); err != nil {
				return err
			}
		default:
			return apperror.NewRateMissingError(input.ItemName)
		}

		item := &entity.BillItem{
			BillID:   bill.ID,
			ItemName: name,
			Quantity: input.Quantity,
			Rate:     rate,
			Unit:     unit,
			Subtotal: money.LineSubtotal(input.Quantity, rate),
		}
		if err := s.billItemRepo.Create(ctx, item); err != nil {
			return err
		}

		created = item
		return s.recomputeOpenTotals(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FinalizeBill computes GST, mints invoice numbers and moves the bill to
// FINALIZED. Only an OPEN bill with at least one item can be finalized.
func (s *BillService) FinalizeBill(ctx context.Context, billID uint) (*entity.Bill, error) {
	var finalized *entity.Bill
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.GetByIDForUpdate(ctx, billID)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.Status != enum.BillStatusOpen {
			return apperror.NewInvalidStateError("Bill is already finalized")
		}

		items, err := s.billItemRepo.GetByBillID(ctx, bill.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperror.NewEmptyBillError()
		}

		subtotal := decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.Subtotal)
		}
		bill.Subtotal = money.Round2(subtotal)

		bill.GSTAmount = decimal.Zero
		if bill.BillType == enum.BillTypeGST {
			bill.GSTAmount = money.GSTAmount(bill.Subtotal, bill.GSTRate)
		}
		bill.TotalAmount = money.Round2(bill.Subtotal.Add(bill.GSTAmount))

		invoiceNumber, err := s.sequencer.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}
		bill.InvoiceNumber = &invoiceNumber

		if bill.BillType == enum.BillTypeGST {
			gstNumber, err := s.sequencer.NextGSTInvoiceNumber(ctx)
			if err != nil {
				return err
			}
			bill.GSTInvoiceNumber = &gstNumber
		}

		bill.Status = enum.BillStatusFinalized
		if err := s.billRepo.Save(ctx, bill); err != nil {
			return err
		}

		bill.Items = items
		finalized = bill
		return nil
	})
	if err != nil {
		return nil, err
	}
	return finalized, nil
}

// PayBillInput represents a payment against a finalized bill
type PayBillInput struct {
	Amount decimal.Decimal
	Method string
}

// PayBill records a payment against a finalized bill. The bill reaches PAID
// only when paid equals total exactly; anything beyond the remaining due is
// rejected as an overpayment.
func (s *BillService) PayBill(ctx context.Context, billID uint, input *PayBillInput) (*entity.Bill, error) {
	amount := money.Round2(input.Amount)
	if !amount.IsPositive() {
		return nil, apperror.NewInvalidAmountError("Payment amount must be positive")
	}

	var paid *entity.Bill
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.GetByIDForUpdate(ctx, billID)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.Status == enum.BillStatusOpen {
			return apperror.NewInvalidStateError("Finalize bill before accepting payment")
		}
		if bill.PaidAmount.Add(amount).GreaterThan(bill.TotalAmount) {
			return apperror.NewOverpaymentError()
		}

		payment := &entity.Payment{
			BillID: bill.ID,
			Amount: amount,
			Method: strings.ToUpper(strings.TrimSpace(input.Method)),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		bill.PaidAmount = bill.PaidAmount.Add(amount)
		bill.Status = bill.DeriveStatus()
		if err := s.billRepo.Save(ctx, bill); err != nil {
			return err
		}

		paid = bill
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// AdjustBillInput represents a downward total correction on a finalized bill
type AdjustBillInput struct {
	Amount         decimal.Decimal
	AdjustmentType enum.AdjustmentType
	Note           *string
}

// AdjustBill reduces the total of a finalized bill, capping paid at the new
// total, and re-derives the status. The adjustment is recorded as a signed
// delta for the audit trail.
func (s *BillService) AdjustBill(ctx context.Context, billID uint, input *AdjustBillInput) (*entity.Bill, error) {
	amount := money.Round2(input.Amount)
	if !amount.IsPositive() {
		return nil, apperror.NewInvalidAmountError("Adjustment amount must be positive")
	}

	var adjusted *entity.Bill
	err := s.txManager.InTx(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.GetByIDForUpdate(ctx, billID)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.Status == enum.BillStatusOpen {
			return apperror.NewInvalidStateError("Cannot adjust an open bill")
		}
		if amount.GreaterThan(bill.TotalAmount) {
			return apperror.NewInvalidAmountError("Adjustment exceeds bill total")
		}

		adjustment := &entity.BillAdjustment{
			BillID:         bill.ID,
			AdjustmentType: input.AdjustmentType,
			AmountDelta:    amount.Neg(),
			Note:           input.Note,
		}
		if err := s.adjustmentRepo.Create(ctx, adjustment); err != nil {
			return err
		}

		bill.TotalAmount = bill.TotalAmount.Sub(amount)
		if bill.PaidAmount.GreaterThan(bill.TotalAmount) {
			bill.PaidAmount = bill.TotalAmount
		}
		bill.Status = bill.DeriveStatus()
		if err := s.billRepo.Save(ctx, bill); err != nil {
			return err
		}

		adjusted = bill
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

// GetBill retrieves a bill with its customer, items, payments and adjustments.
func (s *BillService) GetBill(ctx context.Context, id uint) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills returns the bill history matching the filters, newest first.
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if params.Pagination == nil {
		params.Pagination = &pagination.PaginationParams{}
	}
	params.Pagination.Validate()

	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(bills,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// lockOpenBill locks the bill row and verifies it is still OPEN.
func (s *BillService) lockOpenBill(ctx context.Context, billID uint) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByIDForUpdate(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if bill.Status != enum.BillStatusOpen {
		return nil, apperror.NewInvalidStateError("Cannot modify a finalized bill")
	}
	return bill, nil
}

// recomputeOpenTotals re-sums the line items of an OPEN bill. GST stays zero
// until finalize on every path, so subtotal and total coincide here.
func (s *BillService) recomputeOpenTotals(ctx context.Context, bill *entity.Bill) error {
	items, err := s.billItemRepo.GetByBillID(ctx, bill.ID)
	if err != nil {
		return err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
	}

	bill.Subtotal = money.Round2(subtotal)
	bill.GSTAmount = decimal.Zero
	bill.TotalAmount = bill.Subtotal
	return s.billRepo.Save(ctx, bill)
}
