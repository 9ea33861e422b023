package request

// NormalizeTextRequest carries OCR text lines to normalize into a product name
type NormalizeTextRequest struct {
	TextLines []string `json:"text_lines" binding:"required"`
}

// ResolveProductRequest matches a normalized product against the item master
type ResolveProductRequest struct {
	ProductName string  `json:"product_name" binding:"required"`
	Quantity    float64 `json:"quantity"`
}
