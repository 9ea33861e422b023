package handler

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/application/service"
	"github.com/shopbill/billing-api/internal/domain/enum"
	"github.com/shopbill/billing-api/internal/domain/repository"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/request"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/response"
	"github.com/shopbill/billing-api/pkg/money"
	"github.com/shopbill/billing-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// BillHandler handles bill lifecycle HTTP requests
type BillHandler struct {
	billService *service.BillService
	pdfService  *service.PDFService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, pdfService *service.PDFService) *BillHandler {
	return &BillHandler{billService: billService, pdfService: pdfService}
}

// Create handles opening a new bill
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "customer_id and bill_type are required")
		return
	}

	billType, ok := enum.ParseBillType(req.BillType)
	if !ok {
		response.BadRequest(c, "bill_type must be one of GST, NON_GST, UDHAR")
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), &service.CreateBillInput{
		CustomerID: req.CustomerID,
		BillType:   billType,
		GSTIN:      req.GSTIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Get handles fetching a bill with its items and customer
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// List handles the bill history query with filters
func (h *BillHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}

	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id parameter")
			return
		}
		customerID := uint(id)
		params.CustomerID = &customerID
	}
	if raw := c.Query("bill_type"); raw != "" {
		billType, ok := enum.ParseBillType(raw)
		if !ok {
			response.BadRequest(c, "Invalid bill_type parameter")
			return
		}
		params.BillType = &billType
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := enum.ParseBillStatus(raw)
		if !ok {
			response.BadRequest(c, "Invalid status parameter")
			return
		}
		params.Status = &status
	}
	if raw := c.Query("from_date"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			response.BadRequest(c, "from_date must be YYYY-MM-DD")
			return
		}
		params.FromDate = &from
	}
	if raw := c.Query("to_date"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			response.BadRequest(c, "to_date must be YYYY-MM-DD")
			return
		}
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		params.ToDate = &end
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// AddItem handles appending a line item to an open bill
func (h *BillHandler) AddItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "item_name and quantity are required")
		return
	}

	input := &service.AddItemInput{
		ItemName: req.ItemName,
		Quantity: decimal.NewFromFloat(req.Quantity),
		Unit:     req.Unit,
	}
	if req.Rate != nil {
		rate := money.FromFloat(*req.Rate)
		input.Rate = &rate
	}

	item, err := h.billService.AddItem(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added to bill", item)
}

// Finalize handles closing an open bill and minting its invoice numbers
func (h *BillHandler) Finalize(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.FinalizeBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill finalized successfully", bill)
}

// Pay handles recording a payment against a finalized bill
func (h *BillHandler) Pay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "amount is required")
		return
	}

	bill, err := h.billService.PayBill(c.Request.Context(), id, &service.PayBillInput{
		Amount: money.FromFloat(req.Amount),
		Method: req.Method,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", bill)
}

// Adjust handles reducing the total of a finalized bill
func (h *BillHandler) Adjust(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.AdjustBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "amount is required")
		return
	}

	adjustmentType, _ := enum.ParseAdjustmentType(req.AdjustmentType)

	bill, err := h.billService.AdjustBill(c.Request.Context(), id, &service.AdjustBillInput{
		Amount:         money.FromFloat(req.Amount),
		AdjustmentType: adjustmentType,
		Note:           req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill adjusted successfully", bill)
}

// ExportPDF handles rendering the bill invoice and serving it inline
func (h *BillHandler) ExportPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	path, err := h.pdfService.ExportBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.File(path)
}

// DownloadPDF handles rendering the bill invoice as an attachment
func (h *BillHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	path, err := h.pdfService.ExportBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
