package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/evalhub/assessment-orders/internal/domain/model"
)

// OrderRepository describes persistence operations over assessment orders.
type OrderRepository interface {
	// Find returns one page of orders matching filter, sorted and offset
	// according to sort and page. Metadata is projected only when the page
	// asks for it.
	Find(ctx context.Context, filter model.OrderFilter, sort model.OrderSort, page model.OrderPage) ([]model.Order, error)
	// Count returns the number of orders matching filter.
	Count(ctx context.Context, filter model.OrderFilter) (int64, error)
	// GetByID returns the full projection of a single order.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// SummarizeByStatus groups matching orders by status with count and
	// revenue totals. Statuses with no matches are absent from the result.
	SummarizeByStatus(ctx context.Context, filter model.OrderFilter) (map[string]model.StatusSummary, error)
	// PendingIDs returns up to limit identifiers of PENDING orders, oldest
	// first.
	PendingIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
	// CompletePending marks the given orders COMPLETED in one conditional
	// update: only rows still PENDING are touched, all of them receive the
	// same completedAt stamp. Returns the number of rows updated.
	CompletePending(ctx context.Context, ids []uuid.UUID, completedAt time.Time) (int64, error)
}
