package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/application/service"
	"github.com/shopbill/billing-api/internal/presentation/http/dto/response"
)

// ReportHandler handles sales report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter, defaulting
// to today. Reports false after writing a 400 on a malformed value.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Now(), true
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		response.BadRequest(c, name+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// Daily handles the daily sales report
func (h *ReportHandler) Daily(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	report, err := h.reportService.GetDailyReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", report)
}

// DailySummary handles the condensed single-day summary
func (h *ReportHandler) DailySummary(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	summary, err := h.reportService.GetDailySummary(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily summary retrieved successfully", summary)
}

// RangeSummary handles the date-range summary
func (h *ReportHandler) RangeSummary(c *gin.Context) {
	fromRaw := c.Query("from_date")
	toRaw := c.Query("to_date")
	if fromRaw == "" || toRaw == "" {
		response.BadRequest(c, "from_date and to_date are required")
		return
	}

	from, err := time.ParseInLocation("2006-01-02", fromRaw, time.Local)
	if err != nil {
		response.BadRequest(c, "from_date must be YYYY-MM-DD")
		return
	}
	to, err := time.ParseInLocation("2006-01-02", toRaw, time.Local)
	if err != nil {
		response.BadRequest(c, "to_date must be YYYY-MM-DD")
		return
	}
	if to.Before(from) {
		response.BadRequest(c, "to_date must not be before from_date")
		return
	}

	summary, err := h.reportService.GetRangeSummary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Range summary retrieved successfully", summary)
}

// Monthly handles the per-type monthly summary
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now()

	year := now.Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			response.BadRequest(c, "Invalid year parameter")
			return
		}
		year = parsed
	}

	month := now.Month()
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(c, "month must be between 1 and 12")
			return
		}
		month = time.Month(parsed)
	}

	summary, err := h.reportService.GetMonthlySummary(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly summary retrieved successfully", summary)
}
