package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/application/service"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/request"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/response"
)

// VoiceHandler handles the voice billing flow HTTP requests
type VoiceHandler struct {
	voiceService *service.VoiceService
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(voiceService *service.VoiceService) *VoiceHandler {
	return &VoiceHandler{voiceService: voiceService}
}

// Test handles the AI connectivity probe
func (h *VoiceHandler) Test(c *gin.Context) {
	model, err := h.voiceService.CheckParser(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "AI parser is reachable", gin.H{"model": model})
}

// Parse handles interpreting transcribed speech into billing items
func (h *VoiceHandler) Parse(c *gin.Context) {
	var req request.ParseVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "text is required")
		return
	}

	result, err := h.voiceService.ParseVoice(c.Request.Context(), req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Voice input parsed successfully", result)
}

// ConfirmItems handles validating the user's catalog picks
func (h *VoiceHandler) ConfirmItems(c *gin.Context) {
	var req request.ConfirmItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "items are required")
		return
	}

	items, err := h.voiceService.ConfirmItems(c.Request.Context(), toConfirmInputs(req.Items))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items confirmed successfully", gin.H{"ready_items": items})
}

// CreateBill handles opening a bill from a confirmed voice intent
func (h *VoiceHandler) CreateBill(c *gin.Context) {
	var req request.VoiceCreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "customer_name is required")
		return
	}

	bill, err := h.voiceService.CreateBillFromVoice(c.Request.Context(), &service.VoiceBillInput{
		CustomerName: req.CustomerName,
		BillType:     req.BillType,
		Items:        toConfirmInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created from voice input", bill)
}

// CorrectBill handles applying a spoken correction to an open bill
func (h *VoiceHandler) CorrectBill(c *gin.Context) {
	var req request.VoiceCorrectBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "bill_id and command are required")
		return
	}

	result, err := h.voiceService.CorrectBill(c.Request.Context(), req.BillID, req.Command)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill corrected successfully", result)
}

// FinalizeBill handles finalizing a bill from the voice flow
func (h *VoiceHandler) FinalizeBill(c *gin.Context) {
	var req request.VoiceFinalizeBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "bill_id is required")
		return
	}

	bill, err := h.voiceService.FinalizeBillFromVoice(c.Request.Context(), req.BillID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill finalized successfully", bill)
}

// PayBill handles recording a payment from the voice flow
func (h *VoiceHandler) PayBill(c *gin.Context) {
	var req request.VoicePayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "bill_id and amount are required")
		return
	}

	bill, err := h.voiceService.PayBillFromVoice(c.Request.Context(), req.BillID, req.Amount, req.Method)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", bill)
}

func toConfirmInputs(items []request.ConfirmedItem) []service.ConfirmItemInput {
	inputs := make([]service.ConfirmItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.ConfirmItemInput{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}
	return inputs
}
