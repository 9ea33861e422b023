package handler

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/application/service"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/request"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	ledgerService   *service.LedgerService
	pdfService      *service.PDFService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	customerService *service.CustomerService,
	ledgerService *service.LedgerService,
	pdfService *service.PDFService,
) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		ledgerService:   ledgerService,
		pdfService:      pdfService,
	}
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles fetching a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Search handles searching customers by name or phone
func (h *CustomerHandler) Search(c *gin.Context) {
	results, err := h.customerService.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", results)
}

// Summary handles the per-customer billing summary
func (h *CustomerHandler) Summary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.customerService.GetCustomerSummary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer summary retrieved successfully", summary)
}

// Ledger handles the customer ledger projection
func (h *CustomerHandler) Ledger(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger retrieved successfully", ledger)
}

// LedgerPDF handles rendering the ledger statement as a PDF attachment
func (h *CustomerHandler) LedgerPDF(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	path, err := h.pdfService.ExportLedger(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// UdharDashboard handles the outstanding-credit overview
func (h *CustomerHandler) UdharDashboard(c *gin.Context) {
	dashboard, err := h.customerService.GetUdharDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Udhar dashboard retrieved successfully", dashboard)
}
