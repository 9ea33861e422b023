package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shopbill/billing-api/internal/domain/entity"
	domainRepo "github.com/shopbill/billing-api/internal/domain/repository"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item master repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.ItemMaster) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Create(item).Error
}

func (r *itemRepository) Save(ctx context.Context, item *entity.ItemMaster) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uint) (*entity.ItemMaster, error) {
	var item entity.ItemMaster
	err := dbFromContext(ctx, r.db).WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) FindByName(ctx context.Context, name string) (*entity.ItemMaster, error) {
	var item entity.ItemMaster
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("name ILIKE ?", name).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) FindByNameContains(ctx context.Context, fragment string) (*entity.ItemMaster, error) {
	var item entity.ItemMaster
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("name ILIKE ?", "%"+fragment+"%").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) List(ctx context.Context) ([]entity.ItemMaster, error) {
	var items []entity.ItemMaster
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) Search(ctx context.Context, query string) ([]entity.ItemMaster, error) {
	var items []entity.ItemMaster
	err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("name ILIKE ?", "%"+strings.ToLower(query)+"%").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) SuggestByTokens(ctx context.Context, tokens []string, limit int) ([]entity.ItemMaster, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	query := dbFromContext(ctx, r.db).WithContext(ctx).Model(&entity.ItemMaster{})

	conditions := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens))
	for _, token := range tokens {
		conditions = append(conditions, "name ILIKE ?")
		args = append(args, "%"+token+"%")
	}

	var items []entity.ItemMaster
	err := query.Where(strings.Join(conditions, " OR "), args...).
		Limit(limit).
		Find(&items).Error
	return items, err
}
