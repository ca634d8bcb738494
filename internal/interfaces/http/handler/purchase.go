package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/backoffice/backend/internal/application/trade"
)

// PurchaseHandler handles purchase API endpoints
type PurchaseHandler struct {
	BaseHandler
	purchases *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchases *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// Create handles POST /trade/purchases. The purchase starts pending and
// does not touch stock until it is completed.
func (h *PurchaseHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	purchase, err := h.purchases.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// Get handles GET /trade/purchases/:id
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchases.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// List handles GET /trade/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter tradeapp.PurchaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.purchases.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /trade/purchases/:id, pending purchases only
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req tradeapp.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	purchase, err := h.purchases.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Complete handles POST /trade/purchases/:id/complete. Completing
// increases stock for every line.
func (h *PurchaseHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchases.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Cancel handles POST /trade/purchases/:id/cancel
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchases.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Delete handles DELETE /trade/purchases/:id, pending purchases only
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.purchases.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
