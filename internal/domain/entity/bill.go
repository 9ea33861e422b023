package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopbill/billing-api/internal/domain/enum"
)

// Bill is the billing aggregate root: line items, payments and adjustments
// hang off it, and the finalize/pay/adjust state machine lives in the bill
// service. Invariants: total_amount == subtotal + gst_amount except after an
// adjustment (which reduces total_amount directly), and
// 0 <= paid_amount <= total_amount.
type Bill struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CustomerID uint            `gorm:"not null;index" json:"customer_id"`
	BillType   enum.BillType   `gorm:"not null" json:"bill_type"`
	Status     enum.BillStatus `gorm:"default:0;index" json:"status"`

	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"subtotal"`
	GSTRate     decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"gst_rate"`
	GSTAmount   decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"gst_amount"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"total_amount"`
	PaidAmount  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"paid_amount"`

	// Minted at finalize, never on creation. GST bills get both numbers.
	InvoiceNumber    *string `gorm:"size:100;uniqueIndex" json:"invoice_number,omitempty"`
	GSTInvoiceNumber *string `gorm:"size:100" json:"gst_invoice_number,omitempty"`
	GSTIN            *string `gorm:"size:50" json:"gstin,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Customer    *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items       []BillItem       `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments    []Payment        `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	Adjustments []BillAdjustment `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"adjustments,omitempty"`
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// Remaining returns the amount still due on the bill.
func (b *Bill) Remaining() decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// DeriveStatus recomputes the post-finalize status from the current amounts.
// Must not be called on an OPEN bill. Zero paid always means FINALIZED, even
// when an adjustment has brought the total down to zero as well.
func (b *Bill) DeriveStatus() enum.BillStatus {
	switch {
	case b.PaidAmount.IsZero():
		return enum.BillStatusFinalized
	case b.PaidAmount.Equal(b.TotalAmount):
		return enum.BillStatusPaid
	default:
		return enum.BillStatusPartiallyPaid
	}
}

// BillItem is a line item on a bill. Immutable once created, except through
// the voice-correction flow while the owning bill is still OPEN.
type BillItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	BillID   uint            `gorm:"not null;index" json:"bill_id"`
	ItemName string          `gorm:"size:255;not null" json:"item_name"`
	Quantity decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Rate     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"rate"`
	Unit     *string         `gorm:"size:50" json:"unit,omitempty"`
	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`

	CreatedAt time.Time `json:"created_at"`

	Bill Bill `gorm:"foreignKey:BillID" json:"-"`
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// Payment is an append-only record of money received against a bill.
type Payment struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	BillID uint            `gorm:"not null;index" json:"bill_id"`
	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method string          `gorm:"size:50" json:"method"` // CASH / UPI / BANK / etc

	CreatedAt time.Time `json:"created_at"`

	Bill Bill `gorm:"foreignKey:BillID" json:"-"`
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// BillAdjustment is an append-only audit record of a manual total correction.
// AmountDelta is signed: negative reduces the bill total.
type BillAdjustment struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	BillID         uint                `gorm:"not null;index" json:"bill_id"`
	AdjustmentType enum.AdjustmentType `gorm:"not null" json:"adjustment_type"`
	AmountDelta    decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"amount_delta"`
	Note           *string             `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Bill Bill `gorm:"foreignKey:BillID" json:"-"`
}

// TableName returns the table name for the BillAdjustment model
func (BillAdjustment) TableName() string {
	return "bill_adjustments"
}
