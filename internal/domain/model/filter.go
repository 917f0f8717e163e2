package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderFilter is a validated predicate over orders. The zero value matches
// everything. MatchNone forces an empty result set and takes precedence over
// every other field; it is how malformed identifiers fail closed instead of
// erroring.
type OrderFilter struct {
	Status       string
	UserID       *uuid.UUID
	AssessmentID *uuid.UUID
	From         *time.Time
	To           *time.Time
	Search       string
	MatchNone    bool
}

// SortField enumerates the indexed columns orders may be sorted by.
type SortField string

const (
	SortByCreatedAt   SortField = "created_at"
	SortByUpdatedAt   SortField = "updated_at"
	SortByPrice       SortField = "price"
	SortByCompletedAt SortField = "completed_at"
)

// OrderSort holds a validated sort specification.
type OrderSort struct {
	Field     SortField
	Ascending bool
}

// OrderPage holds normalized pagination parameters.
type OrderPage struct {
	Page            int
	Limit           int
	IncludeMetadata bool
}

// Offset returns the number of rows to skip for this page.
func (p OrderPage) Offset() int {
	return (p.Page - 1) * p.Limit
}
