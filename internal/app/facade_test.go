package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/evalhub/assessment-orders/internal/domain/model"
	testhelpers "github.com/evalhub/assessment-orders/internal/test"
	"github.com/evalhub/assessment-orders/internal/usecase"
)

func TestOrderQueryFacadeDelegation(t *testing.T) {
	id := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	stamp := time.Now().UTC()

	repo := &testhelpers.OrderRepositoryStub{
		FindFn: func(context.Context, model.OrderFilter, model.OrderSort, model.OrderPage) ([]model.Order, error) {
			return []model.Order{{ID: id}}, nil
		},
		CountFn: func(context.Context, model.OrderFilter) (int64, error) {
			return 1, nil
		},
		GetByIDFn: func(ctx context.Context, got uuid.UUID) (*model.Order, error) {
			return &model.Order{ID: got}, nil
		},
		SummarizeByStatusFn: func(context.Context, model.OrderFilter) (map[string]model.StatusSummary, error) {
			return map[string]model.StatusSummary{"PENDING": {Count: 1, TotalRevenue: 50}}, nil
		},
		PendingIDsFn: func(context.Context, int) ([]uuid.UUID, error) {
			return ids, nil
		},
		CompletePendingFn: func(ctx context.Context, got []uuid.UUID, completedAt time.Time) (int64, error) {
			if !completedAt.Equal(stamp) {
				t.Fatalf("unexpected stamp %v", completedAt)
			}
			return int64(len(got)), nil
		},
	}
	facade := NewOrderQueryFacade(usecase.NewOrderUseCase(repo))

	list, err := facade.ListOrders(context.Background(), nil)
	if err != nil || len(list.Data) != 1 || list.Total != 1 {
		t.Fatalf("unexpected list %+v (%v)", list, err)
	}

	order, err := facade.OrderByID(context.Background(), id.String())
	if err != nil || order.ID != id {
		t.Fatalf("unexpected order %+v (%v)", order, err)
	}

	summary, err := facade.SummarizeOrders(context.Background(), nil)
	if err != nil || summary["PENDING"].Count != 1 {
		t.Fatalf("unexpected summary %+v (%v)", summary, err)
	}

	pending, err := facade.PendingOrderIDs(context.Background(), 100)
	if err != nil || len(pending) != 2 {
		t.Fatalf("unexpected pending %v (%v)", pending, err)
	}

	completed, err := facade.CompleteOrders(context.Background(), ids, stamp)
	if err != nil || completed != 2 {
		t.Fatalf("unexpected completion %d (%v)", completed, err)
	}
}
