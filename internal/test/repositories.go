package test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/evalhub/assessment-orders/internal/domain/model"
)

// OrderRepositoryStub allows tests to customize repository behaviour.
type OrderRepositoryStub struct {
	FindFn              func(context.Context, model.OrderFilter, model.OrderSort, model.OrderPage) ([]model.Order, error)
	CountFn             func(context.Context, model.OrderFilter) (int64, error)
	GetByIDFn           func(context.Context, uuid.UUID) (*model.Order, error)
	SummarizeByStatusFn func(context.Context, model.OrderFilter) (map[string]model.StatusSummary, error)
	PendingIDsFn        func(context.Context, int) ([]uuid.UUID, error)
	CompletePendingFn   func(context.Context, []uuid.UUID, time.Time) (int64, error)
}

// Find delegates to FindFn or returns no orders.
func (s *OrderRepositoryStub) Find(ctx context.Context, filter model.OrderFilter, sort model.OrderSort, page model.OrderPage) ([]model.Order, error) {
	if s.FindFn != nil {
		return s.FindFn(ctx, filter, sort, page)
	}
	return nil, nil
}

// Count delegates to CountFn or returns zero.
func (s *OrderRepositoryStub) Count(ctx context.Context, filter model.OrderFilter) (int64, error) {
	if s.CountFn != nil {
		return s.CountFn(ctx, filter)
	}
	return 0, nil
}

// GetByID delegates to GetByIDFn or returns a bare order with the given id.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return &model.Order{ID: id}, nil
}

// SummarizeByStatus delegates to SummarizeByStatusFn or returns an empty map.
func (s *OrderRepositoryStub) SummarizeByStatus(ctx context.Context, filter model.OrderFilter) (map[string]model.StatusSummary, error) {
	if s.SummarizeByStatusFn != nil {
		return s.SummarizeByStatusFn(ctx, filter)
	}
	return map[string]model.StatusSummary{}, nil
}

// PendingIDs delegates to PendingIDsFn or returns no identifiers.
func (s *OrderRepositoryStub) PendingIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if s.PendingIDsFn != nil {
		return s.PendingIDsFn(ctx, limit)
	}
	return nil, nil
}

// CompletePending delegates to CompletePendingFn or reports all ids updated.
func (s *OrderRepositoryStub) CompletePending(ctx context.Context, ids []uuid.UUID, completedAt time.Time) (int64, error) {
	if s.CompletePendingFn != nil {
		return s.CompletePendingFn(ctx, ids, completedAt)
	}
	return int64(len(ids)), nil
}
