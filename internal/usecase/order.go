package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/evalhub/assessment-orders/internal/domain/errors"
	"github.com/evalhub/assessment-orders/internal/domain/model"
	"github.com/evalhub/assessment-orders/internal/domain/repository"
)

// OrderUseCase encapsulates read operations and worker batch primitives over
// assessment orders.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// OrderList is one page of orders plus the total match count.
type OrderList struct {
	Data  []model.Order
	Page  int
	Limit int
	Total int64
}

// List returns a paginated, filtered, sorted page of orders. The page fetch
// and the total count are independent reads and run concurrently; no snapshot
// consistency between them is guaranteed.
func (u *OrderUseCase) List(ctx context.Context, params map[string]string) (*OrderList, error) {
	filter := BuildOrderFilter(params)
	sort := BuildOrderSort(params)
	page := BuildOrderPage(params)

	var (
		data  []model.Order
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = u.orders.Find(gctx, filter, sort, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = u.orders.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if data == nil {
		data = []model.Order{}
	}

	return &OrderList{Data: data, Page: page.Page, Limit: page.Limit, Total: total}, nil
}

// GetByID fetches the full order projection including metadata. A
// syntactically invalid identifier is indistinguishable from a missing order.
func (u *OrderUseCase) GetByID(ctx context.Context, rawID string) (*model.Order, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domainErrors.ErrNotFound
	}
	return u.orders.GetByID(ctx, id)
}

// Summarize groups orders matching the same filters as List by status.
func (u *OrderUseCase) Summarize(ctx context.Context, params map[string]string) (map[string]model.StatusSummary, error) {
	return u.orders.SummarizeByStatus(ctx, BuildOrderFilter(params))
}

// PendingBatch returns identifiers of the oldest pending orders.
func (u *OrderUseCase) PendingBatch(ctx context.Context, limit int) ([]uuid.UUID, error) {
	return u.orders.PendingIDs(ctx, limit)
}

// CompleteBatch marks the given orders completed with a shared timestamp.
func (u *OrderUseCase) CompleteBatch(ctx context.Context, ids []uuid.UUID, completedAt time.Time) (int64, error) {
	return u.orders.CompletePending(ctx, ids, completedAt)
}
