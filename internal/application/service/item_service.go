package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/entity"
	"github.com/shopbill/billing-api/internal/domain/repository"
	"github.com/shopbill/billing-api/pkg/apperror"
	"github.com/shopbill/billing-api/pkg/money"
)

// ItemService manages the item master catalog: the per-item rates that bill
// lines default to. Names are stored lower-cased so lookups stay
// case-insensitive regardless of how the item was first entered.
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new item master service
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Name string
	Rate decimal.Decimal
	Unit *string
}

// CreateItem registers a new item in the catalog.
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.ItemMaster, error) {
	name := strings.ToLower(strings.TrimSpace(input.Name))
	if name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}
	if !input.Rate.IsPositive() {
		return nil, apperror.NewInvalidAmountError("Rate must be positive")
	}

	existing, err := s.itemRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Item '" + name + "' already exists")
	}

	item := &entity.ItemMaster{
		Name: name,
		Rate: money.Round2(input.Rate),
		Unit: input.Unit,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput represents the update item input
type UpdateItemInput struct {
	Name *string
	Rate *decimal.Decimal
	Unit *string
}

// UpdateItem changes the name, rate or unit of an existing catalog entry.
// Bill lines already written keep the name and rate they were billed at.
func (s *ItemService) UpdateItem(ctx context.Context, id uint, input *UpdateItemInput) (*entity.ItemMaster, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.Name != nil {
		name := strings.ToLower(strings.TrimSpace(*input.Name))
		if name == "" {
			return nil, apperror.NewBadRequestError("Item name is required")
		}
		if name != item.Name {
			existing, err := s.itemRepo.FindByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.NewConflictError("Item '" + name + "' already exists")
			}
			item.Name = name
		}
	}
	if input.Rate != nil {
		if !input.Rate.IsPositive() {
			return nil, apperror.NewInvalidAmountError("Rate must be positive")
		}
		item.Rate = money.Round2(*input.Rate)
	}
	if input.Unit != nil {
		item.Unit = input.Unit
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the full catalog ordered by name.
func (s *ItemService) ListItems(ctx context.Context) ([]entity.ItemMaster, error) {
	return s.itemRepo.List(ctx)
}

// SearchItems matches catalog entries by name fragment.
func (s *ItemService) SearchItems(ctx context.Context, query string) ([]entity.ItemMaster, error) {
	return s.itemRepo.Search(ctx, strings.TrimSpace(query))
}

// MatchItem resolves a possibly noisy spoken or scanned name to a catalog
// entry: exact case-insensitive match first, then a contains match.
// Returns nil when nothing plausible is found.
func (s *ItemService) MatchItem(ctx context.Context, name string) (*entity.ItemMaster, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}

	item, err := s.itemRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if item != nil {
		return item, nil
	}
	return s.itemRepo.FindByNameContains(ctx, name)
}

// SuggestItems returns up to limit catalog entries sharing a meaningful
// token (3+ characters) with the given name, for disambiguation prompts.
func (s *ItemService) SuggestItems(ctx context.Context, name string, limit int) ([]entity.ItemMaster, error) {
	if limit <= 0 {
		limit = 5
	}

	tokens := make([]string, 0, 4)
	for _, token := range strings.Fields(strings.ToLower(name)) {
		if len(token) >= 3 {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	return s.itemRepo.SuggestByTokens(ctx, tokens, limit)
}
