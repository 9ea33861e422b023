package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopbill/billing-api/internal/domain/entity"
	"github.com/shopbill/billing-api/internal/domain/enum"
	domainRepo "github.com/shopbill/billing-api/internal/domain/repository"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("name ILIKE ?", name).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetWithBills(ctx context.Context, id uint) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Bills").
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Search(ctx context.Context, query string) ([]entity.Customer, error) {
	var customers []entity.Customer
	pattern := "%" + query + "%"
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Preload("Bills").
		Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern).
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) UdharOutstanding(ctx context.Context) ([]domainRepo.UdharOutstandingRow, error) {
	var rows []domainRepo.UdharOutstandingRow
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&entity.Customer{}).
		Select(`customers.id AS customer_id,
			customers.name AS customer_name,
			customers.phone AS phone,
			COALESCE(SUM(bills.total_amount), 0) AS total_udhar,
			COALESCE(SUM(bills.paid_amount), 0) AS paid_amount`).
		Joins("JOIN bills ON bills.customer_id = customers.id").
		Where("bills.bill_type = ?", enum.BillTypeUdhar).
		Group("customers.id, customers.name, customers.phone").
		Scan(&rows).Error
	return rows, err
}
