package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/evalhub/assessment-orders/internal/domain/errors"
	"github.com/evalhub/assessment-orders/internal/domain/model"
	"github.com/evalhub/assessment-orders/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; pgxmock
// satisfies it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, maxPoolSize, minPoolSize int, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxPoolSize > 0 {
		cfg.MaxConns = int32(maxPoolSize)
	}
	if minPoolSize > 0 {
		cfg.MinConns = int32(minPoolSize)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository backed by this storage.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS assessment_orders (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL,
            assessment_id UUID NOT NULL,
            assessment_title TEXT NOT NULL,
            user_email TEXT NOT NULL,
            status TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
            currency TEXT NOT NULL DEFAULT 'USD',
            metadata JSONB NOT NULL DEFAULT '{}',
            completed_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status_created ON assessment_orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_status_created ON assessment_orders(user_id, status, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON assessment_orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_completed ON assessment_orders(completed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_search ON assessment_orders
            USING GIN (to_tsvector('simple', assessment_title || ' ' || user_email))`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, user_id, assessment_id, assessment_title, user_email,
        status, price, currency, completed_at, created_at, updated_at`

// buildWhere renders filter into a parameterized WHERE clause. Values are
// always bound as arguments, never spliced into the SQL text.
func buildWhere(filter model.OrderFilter) (string, []any) {
	if filter.MatchNone {
		return " WHERE FALSE", nil
	}

	var (
		conds []string
		args  []any
	)
	add := func(expr string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.UserID != nil {
		add("user_id = $%d", *filter.UserID)
	}
	if filter.AssessmentID != nil {
		add("assessment_id = $%d", *filter.AssessmentID)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}
	if filter.Search != "" {
		add("to_tsvector('simple', assessment_title || ' ' || user_email) @@ plainto_tsquery('simple', $%d)", filter.Search)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *orderRepository) Find(ctx context.Context, filter model.OrderFilter, sort model.OrderSort, page model.OrderPage) ([]model.Order, error) {
	where, args := buildWhere(filter)

	columns := orderColumns
	if page.IncludeMetadata {
		columns += ", metadata"
	}

	direction := "DESC"
	if sort.Ascending {
		direction = "ASC"
	}

	// sort.Field comes from the builder's allow-list, so it is safe to
	// interpolate as a column name.
	query := fmt.Sprintf(
		"SELECT %s FROM assessment_orders%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		columns, where, sort.Field, direction, len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		dest := []any{
			&o.ID, &o.UserID, &o.AssessmentID, &o.AssessmentTitle, &o.UserEmail,
			&o.Status, &o.Price, &o.Currency, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
		}
		if page.IncludeMetadata {
			dest = append(dest, &o.Metadata)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Count(ctx context.Context, filter model.OrderFilter) (int64, error) {
	where, args := buildWhere(filter)
	query := "SELECT COUNT(*) FROM assessment_orders" + where

	var total int64
	if err := r.storage.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := "SELECT " + orderColumns + ", metadata FROM assessment_orders WHERE id = $1"

	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.AssessmentID, &o.AssessmentTitle, &o.UserEmail,
		&o.Status, &o.Price, &o.Currency, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
		&o.Metadata,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) SummarizeByStatus(ctx context.Context, filter model.OrderFilter) (map[string]model.StatusSummary, error) {
	where, args := buildWhere(filter)
	query := "SELECT status, COUNT(*), COALESCE(SUM(price), 0) FROM assessment_orders" +
		where + " GROUP BY status ORDER BY status"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := make(map[string]model.StatusSummary)
	for rows.Next() {
		var (
			status string
			entry  model.StatusSummary
		)
		if err := rows.Scan(&status, &entry.Count, &entry.TotalRevenue); err != nil {
			return nil, err
		}
		summary[status] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *orderRepository) PendingIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	const query = `SELECT id FROM assessment_orders
                   WHERE status = $1
                   ORDER BY created_at
                   LIMIT $2`

	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *orderRepository) CompletePending(ctx context.Context, ids []uuid.UUID, completedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	// The status predicate is re-checked inside the update so concurrent
	// transitions are never clobbered and retries stay idempotent.
	const query = `UPDATE assessment_orders
                   SET status = $1, completed_at = $2, updated_at = $2
                   WHERE id = ANY($3) AND status = $4`

	tag, err := r.storage.pool.Exec(ctx, query, model.OrderStatusCompleted, completedAt, ids, model.OrderStatusPending)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
