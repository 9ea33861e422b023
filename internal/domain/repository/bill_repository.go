package repository

import (
	"context"
	"time"

	"github.com/shopbill/billing-api/internal/domain/entity"
	"github.com/shopbill/billing-api/internal/domain/enum"
	"github.com/shopbill/billing-api/pkg/pagination"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uint) (*entity.Bill, error)
	// GetByIDForUpdate locks the bill row for the duration of the enclosing
	// transaction. Callers must be inside TxManager.InTx.
	GetByIDForUpdate(ctx context.Context, id uint) (*entity.Bill, error)
	GetWithDetails(ctx context.Context, id uint) (*entity.Bill, error)
	Save(ctx context.Context, bill *entity.Bill) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error)
	// LatestInvoiceNumber returns the invoice number of the most recently
	// created bill (by id descending) whose invoice number starts with
	// prefix, or "" when no such bill exists.
	LatestInvoiceNumber(ctx context.Context, prefix string) (string, error)
	LatestGSTInvoiceNumber(ctx context.Context, prefix string) (string, error)
}

// BillFilterParams contains filtering parameters for bill history queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uint
	BillType   *enum.BillType
	Status     *enum.BillStatus
	FromDate   *time.Time
	ToDate     *time.Time
}

// BillItemRepository defines the interface for bill line item operations
type BillItemRepository interface {
	Create(ctx context.Context, item *entity.BillItem) error
	Save(ctx context.Context, item *entity.BillItem) error
	Delete(ctx context.Context, id uint) error
	GetByBillID(ctx context.Context, billID uint) ([]entity.BillItem, error)
}

// PaymentRepository defines the interface for payment records
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByCustomer(ctx context.Context, customerID uint) ([]entity.Payment, error)
	// ListCreatedBetween returns payments dated inside the window with their
	// owning bill preloaded, for per-bill-type report grouping.
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Payment, error)
}

// AdjustmentRepository defines the interface for bill adjustment audit records
type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.BillAdjustment) error
	GetByBillID(ctx context.Context, billID uint) ([]entity.BillAdjustment, error)
}
