package request

// CreateBillRequest represents a bill creation request
type CreateBillRequest struct {
	CustomerID uint    `json:"customer_id" binding:"required"`
	BillType   string  `json:"bill_type" binding:"required"`
	GSTIN      *string `json:"gstin"`
}

// AddItemRequest represents a line item added to an open bill
type AddItemRequest struct {
	ItemName string   `json:"item_name" binding:"required"`
	Quantity float64  `json:"quantity" binding:"required"`
	Rate     *float64 `json:"rate"`
	Unit     *string  `json:"unit"`
}

// PayBillRequest represents a payment against a finalized bill
type PayBillRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
}

// AdjustBillRequest represents a post-finalize reduction of a bill
type AdjustBillRequest struct {
	Amount         float64 `json:"amount" binding:"required"`
	AdjustmentType string  `json:"adjustment_type"`
	Note           *string `json:"note"`
}