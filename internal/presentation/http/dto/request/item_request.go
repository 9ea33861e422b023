package request

// CreateItemRequest represents an item-master creation request
type CreateItemRequest struct {
	Name string  `json:"name" binding:"required"`
	Rate float64 `json:"rate" binding:"required"`
	Unit *string `json:"unit"`
}

// UpdateItemRequest represents an item-master update request
type UpdateItemRequest struct {
	Name *string  `json:"name"`
	Rate *float64 `json:"rate"`
	Unit *string  `json:"unit"`
}
