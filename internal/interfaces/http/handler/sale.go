package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/backoffice/backend/internal/application/trade"
)

// SaleHandler handles sale API endpoints
type SaleHandler struct {
	BaseHandler
	sales *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(sales *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// Create handles POST /trade/sales. Stock is decreased at creation; the
// request is rejected outright when any line exceeds the on-hand stock.
func (h *SaleHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	sale, err := h.sales.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get handles GET /trade/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.sales.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List handles GET /trade/sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter tradeapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Cancel handles POST /trade/sales/:id/cancel. Cancelling restores the
// stock the sale had taken.
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.sales.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}
