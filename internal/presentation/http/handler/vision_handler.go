package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/application/service"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/request"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/response"
)

// maxImageBytes caps uploaded product photos at 10 MB.
const maxImageBytes = 10 << 20

// VisionHandler handles product photo recognition HTTP requests
type VisionHandler struct {
	visionService *service.VisionService
}

// NewVisionHandler creates a new vision handler
func NewVisionHandler(visionService *service.VisionService) *VisionHandler {
	return &VisionHandler{visionService: visionService}
}

// readImage extracts the uploaded image from the multipart form. Reports
// false after writing a 400 when the upload is missing or unreadable.
func readImage(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return nil, false
	}
	if fileHeader.Size > maxImageBytes {
		response.BadRequest(c, "image exceeds the 10MB limit")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "image file could not be read")
		return nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		response.BadRequest(c, "image file could not be read")
		return nil, false
	}
	return content, true
}

// Detect handles label and object detection on a product photo
func (h *VisionHandler) Detect(c *gin.Context) {
	content, ok := readImage(c)
	if !ok {
		return
	}

	detection, err := h.visionService.Detect(c.Request.Context(), content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Image analyzed successfully", detection)
}

// DetectText handles OCR on a product photo
func (h *VisionHandler) DetectText(c *gin.Context) {
	content, ok := readImage(c)
	if !ok {
		return
	}

	text, err := h.visionService.DetectText(c.Request.Context(), content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Text extracted successfully", text)
}

// NormalizeText handles turning OCR lines into a catalog-ready product name
func (h *VisionHandler) NormalizeText(c *gin.Context) {
	var req request.NormalizeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "text_lines are required")
		return
	}

	product, err := h.visionService.NormalizeText(c.Request.Context(), req.TextLines)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product normalized successfully", product)
}

// ResolveProduct handles matching a normalized product against the catalog
func (h *VisionHandler) ResolveProduct(c *gin.Context) {
	var req request.ResolveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "product_name is required")
		return
	}

	result, err := h.visionService.ResolveProduct(c.Request.Context(), req.ProductName, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product resolved successfully", result)
}
