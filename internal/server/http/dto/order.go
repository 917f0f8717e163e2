package dto

import "time"

// OrderResponse represents a single assessment order. Metadata is present
// only when the caller opted in (or on single-order lookups).
type OrderResponse struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	AssessmentID    string         `json:"assessmentId"`
	AssessmentTitle string         `json:"assessmentTitle"`
	UserEmail       string         `json:"userEmail"`
	Status          string         `json:"status"`
	Price           float64        `json:"price"`
	Currency        string         `json:"currency"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CompletedAt     *time.Time     `json:"completedAt"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// OrderListResponse is the paginated listing envelope.
type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
}

// StatusSummaryResponse aggregates orders for one status.
type StatusSummaryResponse struct {
	Count        int64   `json:"count"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// ErrorResponse carries a human readable failure message.
type ErrorResponse struct {
	Message string `json:"message"`
}
