package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopbill/billing-api/internal/domain/entity"
	domainRepo "github.com/shopbill/billing-api/internal/domain/repository"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByIDForUpdate(ctx context.Context, id uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithDetails(ctx context.Context, id uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Payments").
		Preload("Adjustments").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Save(ctx context.Context, bill *entity.Bill) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(bill).Error
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.Bill{})

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.BillType != nil {
		query = query.Where("bill_type = ?", *params.BillType)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.FromDate != nil {
		query = query.Where("created_at >= ?", *params.FromDate)
	}

	if params.ToDate != nil {
		query = query.Where("created_at <= ?", *params.ToDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) LatestInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	var bill entity.Bill
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("invoice_number IS NOT NULL AND invoice_number LIKE ?", prefix+"%").
		Order("id DESC").
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if bill.InvoiceNumber == nil {
		return "", nil
	}
	return *bill.InvoiceNumber, nil
}

func (r *billRepository) LatestGSTInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	var bill entity.Bill
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("gst_invoice_number IS NOT NULL AND gst_invoice_number LIKE ?", prefix+"%").
		Order("id DESC").
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if bill.GSTInvoiceNumber == nil {
		return "", nil
	}
	return *bill.GSTInvoiceNumber, nil
}

type billItemRepository struct {
	db *gorm.DB
}

// NewBillItemRepository creates a new bill item repository
func NewBillItemRepository(db *gorm.DB) domainRepo.BillItemRepository {
	return &billItemRepository{db: db}
}

func (r *billItemRepository) Create(ctx context.Context, item *entity.BillItem) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(item).Error
}

func (r *billItemRepository) Save(ctx context.Context, item *entity.BillItem) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(item).Error
}

func (r *billItemRepository) Delete(ctx context.Context, id uint) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Delete(&entity.BillItem{}, "id = ?", id).Error
}

func (r *billItemRepository) GetByBillID(ctx context.Context, billID uint) ([]entity.BillItem, error) {
	var items []entity.BillItem
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID uint) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Joins("JOIN bills ON bills.id = payments.bill_id").
		Where("bills.customer_id = ?", customerID).
		Order("payments.id ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Bill").
		Where("payments.created_at >= ? AND payments.created_at <= ?", from, to).
		Order("payments.id ASC").
		Find(&payments).Error
	return payments, err
}

type adjustmentRepository struct {
	db *gorm.DB
}

// NewAdjustmentRepository creates a new bill adjustment repository
func NewAdjustmentRepository(db *gorm.DB) domainRepo.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

func (r *adjustmentRepository) Create(ctx context.Context, adjustment *entity.BillAdjustment) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(adjustment).Error
}

func (r *adjustmentRepository) GetByBillID(ctx context.Context, billID uint) ([]entity.BillAdjustment, error) {
	var adjustments []entity.BillAdjustment
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("id ASC").
		Find(&adjustments).Error
	return adjustments, err
}
