package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/entity"
	"github.com/shopbill/billing-api/internal/domain/enum"
	"github.com/shopbill/billing-api/internal/domain/repository"
)

// memStore is an in-memory stand-in for the persistence layer. Each
// repository interface is implemented by a thin view over the shared store.
type memStore struct {
	customers   map[uint]*entity.Customer
	items       map[uint]*entity.ItemMaster
	bills       map[uint]*entity.Bill
	billItems   map[uint]*entity.BillItem
	payments    map[uint]*entity.Payment
	adjustments map[uint]*entity.BillAdjustment
	nextID      uint
	now         time.Time
}

func newMemStore() *memStore {
	return &memStore{
		customers:   make(map[uint]*entity.Customer),
		items:       make(map[uint]*entity.ItemMaster),
		bills:       make(map[uint]*entity.Bill),
		billItems:   make(map[uint]*entity.BillItem),
		payments:    make(map[uint]*entity.Payment),
		adjustments: make(map[uint]*entity.BillAdjustment),
		now:         time.Date(2026, time.August, 27, 10, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) billItemsFor(billID uint) []entity.BillItem {
	var items []entity.BillItem
	for _, id := range sortedKeys(s.billItems) {
		if s.billItems[id].BillID == billID {
			items = append(items, *s.billItems[id])
		}
	}
	return items
}

// newBillRecord inserts a bare bill row, for tests that only care about
// stored invoice numbers.
func newBillRecord(s *memStore) *entity.Bill {
	bill := &entity.Bill{}
	_ = (memBills{s}).Create(context.Background(), bill)
	return bill
}

func sortedKeys[T any](m map[uint]*T) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Transaction manager: the store has no real transactions, callbacks just run.

type memTx struct{ s *memStore }

var _ repository.TxManager = memTx{}

func (t memTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Bill repository

type memBills struct{ s *memStore }

var _ repository.BillRepository = memBills{}

func (r memBills) Create(ctx context.Context, bill *entity.Bill) error {
	bill.ID = r.s.id()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = r.s.now
	}
	r.s.bills[bill.ID] = bill
	return nil
}

func (r memBills) GetByID(ctx context.Context, id uint) (*entity.Bill, error) {
	return r.s.bills[id], nil
}

func (r memBills) GetByIDForUpdate(ctx context.Context, id uint) (*entity.Bill, error) {
	return r.s.bills[id], nil
}

func (r memBills) GetWithDetails(ctx context.Context, id uint) (*entity.Bill, error) {
	bill, ok := r.s.bills[id]
	if !ok {
		return nil, nil
	}
	bill.Customer = r.s.customers[bill.CustomerID]
	bill.Items = r.s.billItemsFor(id)
	bill.Payments = nil
	for _, paymentID := range sortedKeys(r.s.payments) {
		if r.s.payments[paymentID].BillID == id {
			bill.Payments = append(bill.Payments, *r.s.payments[paymentID])
		}
	}
	bill.Adjustments = nil
	for _, adjID := range sortedKeys(r.s.adjustments) {
		if r.s.adjustments[adjID].BillID == id {
			bill.Adjustments = append(bill.Adjustments, *r.s.adjustments[adjID])
		}
	}
	return bill, nil
}

func (r memBills) Save(ctx context.Context, bill *entity.Bill) error {
	r.s.bills[bill.ID] = bill
	return nil
}

func (r memBills) List(ctx context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	var matched []entity.Bill
	for _, id := range sortedKeys(r.s.bills) {
		bill := r.s.bills[id]
		if params.CustomerID != nil && bill.CustomerID != *params.CustomerID {
			continue
		}
		if params.BillType != nil && bill.BillType != *params.BillType {
			continue
		}
		if params.Status != nil && bill.Status != *params.Status {
			continue
		}
		matched = append(matched, *bill)
	}
	total := int64(len(matched))

	offset := params.Pagination.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r memBills) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill
	for _, id := range sortedKeys(r.s.bills) {
		bill := r.s.bills[id]
		if bill.CreatedAt.Before(from) || bill.CreatedAt.After(to) {
			continue
		}
		bills = append(bills, *bill)
	}
	return bills, nil
}

func (r memBills) LatestInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	var latest string
	for _, id := range sortedKeys(r.s.bills) {
		bill := r.s.bills[id]
		if bill.InvoiceNumber != nil && strings.HasPrefix(*bill.InvoiceNumber, prefix) {
			latest = *bill.InvoiceNumber
		}
	}
	return latest, nil
}

func (r memBills) LatestGSTInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	var latest string
	for _, id := range sortedKeys(r.s.bills) {
		bill := r.s.bills[id]
		if bill.GSTInvoiceNumber != nil && strings.HasPrefix(*bill.GSTInvoiceNumber, prefix) {
			latest = *bill.GSTInvoiceNumber
		}
	}
	return latest, nil
}

// Bill item repository

type memBillItems struct{ s *memStore }

var _ repository.BillItemRepository = memBillItems{}

func (r memBillItems) Create(ctx context.Context, item *entity.BillItem) error {
	item.ID = r.s.id()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.s.now
	}
	r.s.billItems[item.ID] = item
	return nil
}

func (r memBillItems) Save(ctx context.Context, item *entity.BillItem) error {
	stored := *item
	r.s.billItems[item.ID] = &stored
	return nil
}

func (r memBillItems) Delete(ctx context.Context, id uint) error {
	delete(r.s.billItems, id)
	return nil
}

func (r memBillItems) GetByBillID(ctx context.Context, billID uint) ([]entity.BillItem, error) {
	return r.s.billItemsFor(billID), nil
}

// Payment repository

type memPayments struct{ s *memStore }

var _ repository.PaymentRepository = memPayments{}

func (r memPayments) Create(ctx context.Context, payment *entity.Payment) error {
	payment.ID = r.s.id()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = r.s.now
	}
	r.s.payments[payment.ID] = payment
	return nil
}

func (r memPayments) ListByCustomer(ctx context.Context, customerID uint) ([]entity.Payment, error) {
	var payments []entity.Payment
	for _, id := range sortedKeys(r.s.payments) {
		payment := r.s.payments[id]
		bill, ok := r.s.bills[payment.BillID]
		if ok && bill.CustomerID == customerID {
			payments = append(payments, *payment)
		}
	}
	return payments, nil
}

func (r memPayments) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Payment, error) {
	var payments []entity.Payment
	for _, id := range sortedKeys(r.s.payments) {
		payment := *r.s.payments[id]
		if payment.CreatedAt.Before(from) || payment.CreatedAt.After(to) {
			continue
		}
		if bill, ok := r.s.bills[payment.BillID]; ok {
			payment.Bill = *bill
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

// Adjustment repository

type memAdjustments struct{ s *memStore }

var _ repository.AdjustmentRepository = memAdjustments{}

func (r memAdjustments) Create(ctx context.Context, adjustment *entity.BillAdjustment) error {
	adjustment.ID = r.s.id()
	if adjustment.CreatedAt.IsZero() {
		adjustment.CreatedAt = r.s.now
	}
	r.s.adjustments[adjustment.ID] = adjustment
	return nil
}

func (r memAdjustments) GetByBillID(ctx context.Context, billID uint) ([]entity.BillAdjustment, error) {
	var adjustments []entity.BillAdjustment
	for _, id := range sortedKeys(r.s.adjustments) {
		if r.s.adjustments[id].BillID == billID {
			adjustments = append(adjustments, *r.s.adjustments[id])
		}
	}
	return adjustments, nil
}

// Item master repository

type memItems struct{ s *memStore }

var _ repository.ItemRepository = memItems{}

func (r memItems) Create(ctx context.Context, item *entity.ItemMaster) error {
	item.ID = r.s.id()
	r.s.items[item.ID] = item
	return nil
}

func (r memItems) Save(ctx context.Context, item *entity.ItemMaster) error {
	r.s.items[item.ID] = item
	return nil
}

func (r memItems) GetByID(ctx context.Context, id uint) (*entity.ItemMaster, error) {
	return r.s.items[id], nil
}

func (r memItems) FindByName(ctx context.Context, name string) (*entity.ItemMaster, error) {
	for _, id := range sortedKeys(r.s.items) {
		if strings.EqualFold(r.s.items[id].Name, name) {
			return r.s.items[id], nil
		}
	}
	return nil, nil
}

func (r memItems) FindByNameContains(ctx context.Context, fragment string) (*entity.ItemMaster, error) {
	fragment = strings.ToLower(fragment)
	for _, id := range sortedKeys(r.s.items) {
		if strings.Contains(strings.ToLower(r.s.items[id].Name), fragment) {
			return r.s.items[id], nil
		}
	}
	return nil, nil
}

func (r memItems) List(ctx context.Context) ([]entity.ItemMaster, error) {
	var items []entity.ItemMaster
	for _, id := range sortedKeys(r.s.items) {
		items = append(items, *r.s.items[id])
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r memItems) Search(ctx context.Context, query string) ([]entity.ItemMaster, error) {
	query = strings.ToLower(query)
	var items []entity.ItemMaster
	for _, id := range sortedKeys(r.s.items) {
		if strings.Contains(strings.ToLower(r.s.items[id].Name), query) {
			items = append(items, *r.s.items[id])
		}
	}
	return items, nil
}

func (r memItems) SuggestByTokens(ctx context.Context, tokens []string, limit int) ([]entity.ItemMaster, error) {
	var items []entity.ItemMaster
	for _, id := range sortedKeys(r.s.items) {
		name := strings.ToLower(r.s.items[id].Name)
		for _, token := range tokens {
			if strings.Contains(name, strings.ToLower(token)) {
				items = append(items, *r.s.items[id])
				break
			}
		}
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

// Customer repository

type memCustomers struct{ s *memStore }

var _ repository.CustomerRepository = memCustomers{}

func (r memCustomers) Create(ctx context.Context, customer *entity.Customer) error {
	customer.ID = r.s.id()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = r.s.now
	}
	r.s.customers[customer.ID] = customer
	return nil
}

func (r memCustomers) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	return r.s.customers[id], nil
}

func (r memCustomers) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	for _, id := range sortedKeys(r.s.customers) {
		if strings.EqualFold(r.s.customers[id].Name, name) {
			return r.s.customers[id], nil
		}
	}
	return nil, nil
}

func (r memCustomers) GetWithBills(ctx context.Context, id uint) (*entity.Customer, error) {
	customer, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	customer.Bills = nil
	for _, billID := range sortedKeys(r.s.bills) {
		if r.s.bills[billID].CustomerID == id {
			customer.Bills = append(customer.Bills, *r.s.bills[billID])
		}
	}
	return customer, nil
}

func (r memCustomers) Search(ctx context.Context, query string) ([]entity.Customer, error) {
	query = strings.ToLower(query)
	var customers []entity.Customer
	for _, id := range sortedKeys(r.s.customers) {
		customer, _ := r.GetWithBills(ctx, id)
		phone := ""
		if customer.Phone != nil {
			phone = *customer.Phone
		}
		if strings.Contains(strings.ToLower(customer.Name), query) || strings.Contains(phone, query) {
			customers = append(customers, *customer)
		}
	}
	return customers, nil
}

func (r memCustomers) UdharOutstanding(ctx context.Context) ([]repository.UdharOutstandingRow, error) {
	byCustomer := make(map[uint]*repository.UdharOutstandingRow)
	for _, id := range sortedKeys(r.s.bills) {
		bill := r.s.bills[id]
		if bill.BillType != enum.BillTypeUdhar {
			continue
		}
		row, ok := byCustomer[bill.CustomerID]
		if !ok {
			customer := r.s.customers[bill.CustomerID]
			row = &repository.UdharOutstandingRow{
				CustomerID:   customer.ID,
				CustomerName: customer.Name,
				Phone:        customer.Phone,
				TotalUdhar:   decimal.Zero,
				PaidAmount:   decimal.Zero,
			}
			byCustomer[bill.CustomerID] = row
		}
		row.TotalUdhar = row.TotalUdhar.Add(bill.TotalAmount)
		row.PaidAmount = row.PaidAmount.Add(bill.PaidAmount)
	}

	var rows []repository.UdharOutstandingRow
	for _, id := range sortedKeys(byCustomer) {
		rows = append(rows, *byCustomer[id])
	}
	return rows, nil
}
