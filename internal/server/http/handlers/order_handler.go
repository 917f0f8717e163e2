package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/evalhub/assessment-orders/internal/domain/errors"
	"github.com/evalhub/assessment-orders/internal/domain/model"
	"github.com/evalhub/assessment-orders/internal/server/http/dto"
)

// OrderHandler manages order query endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	result, err := h.facade.ListOrders(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		return
	}

	response := dto.OrderListResponse{
		Data:  make([]dto.OrderResponse, 0, len(result.Data)),
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	}
	for _, o := range result.Data {
		response.Data = append(response.Data, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Summary handles GET /orders/summary.
func (h *OrderHandler) Summary(c *gin.Context) {
	summary, err := h.facade.SummarizeOrders(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		return
	}

	response := make(map[string]dto.StatusSummaryResponse, len(summary))
	for status, entry := range summary {
		response[status] = dto.StatusSummaryResponse{
			Count:        entry.Count,
			TotalRevenue: entry.TotalRevenue,
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetByID handles GET /orders/:id. A malformed identifier and a missing order
// are both reported as not found.
func (h *OrderHandler) GetByID(c *gin.Context) {
	order, err := h.facade.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              order.ID.String(),
		UserID:          order.UserID.String(),
		AssessmentID:    order.AssessmentID.String(),
		AssessmentTitle: order.AssessmentTitle,
		UserEmail:       order.UserEmail,
		Status:          string(order.Status),
		Price:           order.Price,
		Currency:        order.Currency,
		Metadata:        order.Metadata,
		CompletedAt:     order.CompletedAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
