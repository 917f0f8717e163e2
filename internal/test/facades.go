package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evalhub/assessment-orders/internal/domain/model"
	"github.com/evalhub/assessment-orders/internal/usecase"
)

// QueryFacadeStub provides controllable behaviour for order endpoints.
type QueryFacadeStub struct {
	ListFn      func(context.Context, map[string]string) (*usecase.OrderList, error)
	OrderFn     func(context.Context, string) (*model.Order, error)
	SummarizeFn func(context.Context, map[string]string) (map[string]model.StatusSummary, error)
}

// ListOrders delegates to provided function or returns an empty first page.
func (s QueryFacadeStub) ListOrders(ctx context.Context, params map[string]string) (*usecase.OrderList, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, params)
	}
	return &usecase.OrderList{Data: []model.Order{}, Page: 1, Limit: 20}, nil
}

// OrderByID delegates to provided function or returns a bare order.
func (s QueryFacadeStub) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{Status: model.OrderStatusPending}, nil
}

// SummarizeOrders delegates to provided function or returns an empty summary.
func (s QueryFacadeStub) SummarizeOrders(ctx context.Context, params map[string]string) (map[string]model.StatusSummary, error) {
	if s.SummarizeFn != nil {
		return s.SummarizeFn(ctx, params)
	}
	return map[string]model.StatusSummary{}, nil
}

// HealthCheckerStub reports a configurable health state.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

// WorkerFacadeStub simulates the pending-order backlog for worker tests. The
// default behaviour drains Pending FIFO and records every completion batch
// with its timestamp.
type WorkerFacadeStub struct {
	sync.Mutex

	Pending   []uuid.UUID
	PendingFn func(context.Context, int) ([]uuid.UUID, error)

	CompleteFn func(context.Context, []uuid.UUID, time.Time) (int64, error)
	Batches    [][]uuid.UUID
	Stamps     []time.Time
}

// PendingOrderIDs returns up to limit identifiers from the head of the backlog.
func (s *WorkerFacadeStub) PendingOrderIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	s.Lock()
	defer s.Unlock()
	if limit > len(s.Pending) {
		limit = len(s.Pending)
	}
	batch := append([]uuid.UUID(nil), s.Pending[:limit]...)
	return batch, nil
}

// CompleteOrders removes the batch from the backlog and records it.
func (s *WorkerFacadeStub) CompleteOrders(ctx context.Context, ids []uuid.UUID, completedAt time.Time) (int64, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, ids, completedAt)
	}
	s.Lock()
	defer s.Unlock()
	if len(ids) > len(s.Pending) {
		ids = ids[:len(s.Pending)]
	}
	s.Pending = s.Pending[len(ids):]
	s.Batches = append(s.Batches, append([]uuid.UUID(nil), ids...))
	s.Stamps = append(s.Stamps, completedAt)
	return int64(len(ids)), nil
}

// CompletedCount reports how many identifiers have been completed so far.
func (s *WorkerFacadeStub) CompletedCount() int {
	s.Lock()
	defer s.Unlock()
	total := 0
	for _, batch := range s.Batches {
		total += len(batch)
	}
	return total
}
