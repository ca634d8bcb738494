package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/backoffice/backend/internal/domain/inventory"
	"github.com/backoffice/backend/internal/domain/shared"
)

// MovementHandler exposes the stock movement history of a product
type MovementHandler struct {
	BaseHandler
	movements inventory.MovementRepository
}

// NewMovementHandler creates a new MovementHandler
func NewMovementHandler(movements inventory.MovementRepository) *MovementHandler {
	return &MovementHandler{movements: movements}
}

// movementQuery binds the pagination query parameters
type movementQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ListByProduct handles GET /catalog/products/:id/movements
func (h *MovementHandler) ListByProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var q movementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 && q.PageSize <= 100 {
		filter.PageSize = q.PageSize
	}

	page, err := h.movements.FindByProduct(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
