package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/backoffice/backend/internal/application/report"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reports *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// rangeQuery binds the date range query parameters
type rangeQuery struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// PurchaseStats handles GET /reports/purchases
func (h *ReportHandler) PurchaseStats(c *gin.Context) {
	stats, err := h.reports.PurchaseStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// SalesStats handles GET /reports/sales
func (h *ReportHandler) SalesStats(c *gin.Context) {
	stats, err := h.reports.SalesStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// InventoryStats handles GET /reports/inventory
func (h *ReportHandler) InventoryStats(c *gin.Context) {
	stats, err := h.reports.InventoryStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// SalesInRange handles GET /reports/sales/range
func (h *ReportHandler) SalesInRange(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	series, err := h.reports.SalesInRange(c.Request.Context(), q.From, q.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// PurchasesInRange handles GET /reports/purchases/range
func (h *ReportHandler) PurchasesInRange(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	series, err := h.reports.PurchasesInRange(c.Request.Context(), q.From, q.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}
