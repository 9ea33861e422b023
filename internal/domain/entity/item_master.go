package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemMaster is the name -> (rate, unit) pricing catalog. Names are stored
// lower-cased so lookups stay case-insensitive; absent entries are created
// lazily the first time an item is billed with an explicit rate.
type ItemMaster struct {
	ID   uint            `gorm:"primaryKey" json:"id"`
	Name string          `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Rate decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"rate"`
	Unit *string         `gorm:"size:50" json:"unit,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the ItemMaster model
func (ItemMaster) TableName() string {
	return "item_master"
}
