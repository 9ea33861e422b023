package repository

import (
	"context"

	"github.com/shopbill/billing-api/internal/domain/entity"
)

// ItemRepository defines the interface for item master catalog operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.ItemMaster) error
	Save(ctx context.Context, item *entity.ItemMaster) error
	GetByID(ctx context.Context, id uint) (*entity.ItemMaster, error)
	// FindByName performs a case-insensitive exact-name lookup.
	FindByName(ctx context.Context, name string) (*entity.ItemMaster, error)
	// FindByNameContains returns the first entry whose name contains the
	// given fragment, case-insensitively.
	FindByNameContains(ctx context.Context, fragment string) (*entity.ItemMaster, error)
	List(ctx context.Context) ([]entity.ItemMaster, error)
	Search(ctx context.Context, query string) ([]entity.ItemMaster, error)
	// SuggestByTokens returns up to limit entries whose name contains any of
	// the tokens, for the voice/vision suggestion flows.
	SuggestByTokens(ctx context.Context, tokens []string, limit int) ([]entity.ItemMaster, error)
}
