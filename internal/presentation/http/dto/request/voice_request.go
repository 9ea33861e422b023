package request

// ParseVoiceRequest carries the transcribed speech to interpret
type ParseVoiceRequest struct {
	Text string `json:"text" binding:"required"`
}

// ConfirmedItem is one catalog pick confirmed by the user
type ConfirmedItem struct {
	ItemID   uint    `json:"item_id" binding:"required"`
	Quantity float64 `json:"quantity"`
}

// ConfirmItemsRequest validates the user's catalog picks
type ConfirmItemsRequest struct {
	Items []ConfirmedItem `json:"items" binding:"required"`
}

// VoiceCreateBillRequest opens a bill from a confirmed voice intent
type VoiceCreateBillRequest struct {
	CustomerName string          `json:"customer_name" binding:"required"`
	BillType     string          `json:"bill_type"`
	Items        []ConfirmedItem `json:"items"`
}

// VoiceCorrectBillRequest applies a spoken correction to an open bill
type VoiceCorrectBillRequest struct {
	BillID  uint   `json:"bill_id" binding:"required"`
	Command string `json:"command" binding:"required"`
}

// VoiceFinalizeBillRequest finalizes a bill from the voice flow
type VoiceFinalizeBillRequest struct {
	BillID uint `json:"bill_id" binding:"required"`
}

// VoicePayBillRequest records a payment from the voice flow
type VoicePayBillRequest struct {
	BillID uint    `json:"bill_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
}
