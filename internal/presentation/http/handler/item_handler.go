package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/application/service"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/request"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/response"
	"github.com/shopbill/billing-api/pkg/money"
)

// ItemHandler handles item-master HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create handles registering a catalog item
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and rate are required")
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		Name: req.Name,
		Rate: money.FromFloat(req.Rate),
		Unit: req.Unit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// List handles listing the full catalog
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.itemService.ListItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items retrieved successfully", items)
}

// Search handles substring search over the catalog
func (h *ItemHandler) Search(c *gin.Context) {
	items, err := h.itemService.SearchItems(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items retrieved successfully", items)
}

// Update handles changing the rate or unit of a catalog item
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateItemInput{Name: req.Name, Unit: req.Unit}
	if req.Rate != nil {
		rate := money.FromFloat(*req.Rate)
		input.Rate = &rate
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}
