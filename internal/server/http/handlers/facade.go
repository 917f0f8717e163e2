package handlers

import (
	"context"

	"github.com/evalhub/assessment-orders/internal/domain/model"
	"github.com/evalhub/assessment-orders/internal/usecase"
)

// OrderFacade encapsulates order queries exposed via HTTP.
type OrderFacade interface {
	ListOrders(ctx context.Context, params map[string]string) (*usecase.OrderList, error)
	OrderByID(ctx context.Context, id string) (*model.Order, error)
	SummarizeOrders(ctx context.Context, params map[string]string) (map[string]model.StatusSummary, error)
}

// HealthChecker reports storage connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
