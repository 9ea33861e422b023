package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/entity"
	"github.com/shopbill/billing-api/internal/domain/enum"
	"github.com/shopbill/billing-api/internal/domain/repository"
	"github.com/shopbill/billing-api/pkg/apperror"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Address *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer := &entity.Customer{
		Name:    name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// CustomerSearchResult is one search hit annotated with the amount still due
// across the customer's finalized bills.
type CustomerSearchResult struct {
	Customer      entity.Customer `json:"customer"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// SearchCustomers matches customers by name or phone fragment and annotates
// each hit with its outstanding balance.
func (s *CustomerService) SearchCustomers(ctx context.Context, query string) ([]CustomerSearchResult, error) {
	customers, err := s.customerRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}

	results := make([]CustomerSearchResult, 0, len(customers))
	for _, customer := range customers {
		pending := decimal.Zero
		for _, bill := range customer.Bills {
			if bill.Status == enum.BillStatusOpen {
				continue
			}
			pending = pending.Add(bill.Remaining())
		}
		results = append(results, CustomerSearchResult{
			Customer:      customer,
			PendingAmount: pending,
		})
	}
	return results, nil
}

// CustomerSummary aggregates a customer's billing position.
type CustomerSummary struct {
	Customer         *entity.Customer `json:"customer"`
	TotalBills       int              `json:"total_bills"`
	TotalBilled      decimal.Decimal  `json:"total_billed"`
	TotalPaid        decimal.Decimal  `json:"total_paid"`
	PendingAmount    decimal.Decimal  `json:"pending_amount"`
	UdharOutstanding decimal.Decimal  `json:"udhar_outstanding"`
}

// GetCustomerSummary computes a customer's aggregate position across all
// their bills. OPEN bills are excluded; their totals are not yet owed.
func (s *CustomerService) GetCustomerSummary(ctx context.Context, id uint) (*CustomerSummary, error) {
	customer, err := s.customerRepo.GetWithBills(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	summary := &CustomerSummary{
		Customer:         customer,
		TotalBilled:      decimal.Zero,
		TotalPaid:        decimal.Zero,
		PendingAmount:    decimal.Zero,
		UdharOutstanding: decimal.Zero,
	}

	for _, bill := range customer.Bills {
		if bill.Status == enum.BillStatusOpen {
			continue
		}
		summary.TotalBills++
		summary.TotalBilled = summary.TotalBilled.Add(bill.TotalAmount)
		summary.TotalPaid = summary.TotalPaid.Add(bill.PaidAmount)
		summary.PendingAmount = summary.PendingAmount.Add(bill.Remaining())
		if bill.BillType == enum.BillTypeUdhar {
			summary.UdharOutstanding = summary.UdharOutstanding.Add(bill.Remaining())
		}
	}
	return summary, nil
}

// UdharPosition is one customer's credit position on the udhar dashboard.
type UdharPosition struct {
	CustomerID   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Phone        *string         `json:"phone,omitempty"`
	TotalUdhar   decimal.Decimal `json:"total_udhar"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// UdharDashboard summarizes outstanding credit across all customers.
type UdharDashboard struct {
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	CustomerCount    int             `json:"customer_count"`
	Positions        []UdharPosition `json:"positions"`
}

// GetUdharDashboard lists every customer carrying unpaid UDHAR bills with
// the grand total outstanding.
func (s *CustomerService) GetUdharDashboard(ctx context.Context) (*UdharDashboard, error) {
	rows, err := s.customerRepo.UdharOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &UdharDashboard{
		TotalOutstanding: decimal.Zero,
		Positions:        make([]UdharPosition, 0, len(rows)),
	}
	for _, row := range rows {
		outstanding := row.TotalUdhar.Sub(row.PaidAmount)
		if !outstanding.IsPositive() {
			continue
		}
		dashboard.Positions = append(dashboard.Positions, UdharPosition{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			Phone:        row.Phone,
			TotalUdhar:   row.TotalUdhar,
			PaidAmount:   row.PaidAmount,
			Outstanding:  outstanding,
		})
		dashboard.TotalOutstanding = dashboard.TotalOutstanding.Add(outstanding)
	}
	dashboard.CustomerCount = len(dashboard.Positions)
	return dashboard, nil
}
