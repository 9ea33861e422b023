package entity

import "time"

// Customer represents a shop customer
type Customer struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"size:255;not null;index" json:"name"`
	Phone   *string `gorm:"size:50;index" json:"phone,omitempty"`
	Address *string `gorm:"type:text" json:"address,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Bills []Bill `gorm:"foreignKey:CustomerID" json:"-"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
