package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus describes the processing lifecycle of an assessment order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order describes a purchase of an assessment placed by a user. Orders are
// created PENDING by the upstream placement flow; the completion worker is
// the only writer of the PENDING to COMPLETED transition.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	AssessmentID    uuid.UUID
	AssessmentTitle string
	UserEmail       string
	Status          OrderStatus
	Price           float64
	Currency        string
	Metadata        map[string]any
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StatusSummary aggregates matching orders for one status.
type StatusSummary struct {
	Count        int64
	TotalRevenue float64
}
