package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uint) (*entity.Customer, error)
	GetByName(ctx context.Context, name string) (*entity.Customer, error)
	GetWithBills(ctx context.Context, id uint) (*entity.Customer, error)
	Search(ctx context.Context, query string) ([]entity.Customer, error)
	// UdharOutstanding aggregates UDHAR bill totals and payments per customer.
	UdharOutstanding(ctx context.Context) ([]UdharOutstandingRow, error)
}

// UdharOutstandingRow is one customer's aggregated UDHAR position.
type UdharOutstandingRow struct {
	CustomerID   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Phone        *string         `json:"phone,omitempty"`
	TotalUdhar   decimal.Decimal `json:"total_udhar"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
}
