package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/evalhub/assessment-orders/internal/domain/model"
	"github.com/evalhub/assessment-orders/internal/usecase"
)

// OrderQueryFacade aggregates the operations exposed to HTTP handlers and the
// completion worker.
type OrderQueryFacade struct {
	orders *usecase.OrderUseCase
}

// NewOrderQueryFacade constructs the facade.
func NewOrderQueryFacade(orders *usecase.OrderUseCase) *OrderQueryFacade {
	return &OrderQueryFacade{orders: orders}
}

func (f *OrderQueryFacade) ListOrders(ctx context.Context, params map[string]string) (*usecase.OrderList, error) {
	return f.orders.List(ctx, params)
}

func (f *OrderQueryFacade) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.GetByID(ctx, id)
}

func (f *OrderQueryFacade) SummarizeOrders(ctx context.Context, params map[string]string) (map[string]model.StatusSummary, error) {
	return f.orders.Summarize(ctx, params)
}

func (f *OrderQueryFacade) PendingOrderIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	return f.orders.PendingBatch(ctx, limit)
}

func (f *OrderQueryFacade) CompleteOrders(ctx context.Context, ids []uuid.UUID, completedAt time.Time) (int64, error) {
	return f.orders.CompleteBatch(ctx, ids, completedAt)
}
