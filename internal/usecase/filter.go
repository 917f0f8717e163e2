package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evalhub/assessment-orders/internal/domain/model"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 200
)

// sortFields maps external sort names onto indexed columns. Anything outside
// this allow-list falls back to creation time so arbitrary-field sorts never
// reach the store.
var sortFields = map[string]model.SortField{
	"createdAt":   model.SortByCreatedAt,
	"updatedAt":   model.SortByUpdatedAt,
	"price":       model.SortByPrice,
	"completedAt": model.SortByCompletedAt,
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// BuildOrderFilter maps untrusted query parameters onto a store predicate.
// Malformed identifiers force an empty result set instead of failing the
// request; unparsable date bounds are dropped; unknown status values are
// carried through as literals and simply match nothing.
func BuildOrderFilter(params map[string]string) model.OrderFilter {
	var filter model.OrderFilter

	filter.Status = params["status"]

	if raw := params["userId"]; raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.UserID = &id
		} else {
			filter.MatchNone = true
		}
	}

	if raw := params["assessmentId"]; raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.AssessmentID = &id
		} else {
			filter.MatchNone = true
		}
	}

	if from, ok := parseDate(params["fromDate"]); ok {
		filter.From = &from
	}
	if to, ok := parseDate(params["toDate"]); ok {
		filter.To = &to
	}

	if q := strings.TrimSpace(params["q"]); q != "" {
		filter.Search = q
	}

	return filter
}

// BuildOrderSort produces a sort specification limited to the allow-listed
// fields. Direction is ascending only for the literal value "asc".
func BuildOrderSort(params map[string]string) model.OrderSort {
	sort := model.OrderSort{Field: model.SortByCreatedAt}
	if field, ok := sortFields[params["sortBy"]]; ok {
		sort.Field = field
	}
	sort.Ascending = params["sortDir"] == "asc"
	return sort
}

// BuildOrderPage normalizes pagination: page defaults to 1 and never drops
// below it, limit is clamped into [1, 200] and defaults to 20.
func BuildOrderPage(params map[string]string) model.OrderPage {
	page := model.OrderPage{Page: 1, Limit: defaultPageLimit}

	if n, err := strconv.Atoi(params["page"]); err == nil && n > 1 {
		page.Page = n
	}

	if n, err := strconv.Atoi(params["limit"]); err == nil {
		switch {
		case n < 1:
			page.Limit = 1
		case n > maxPageLimit:
			page.Limit = maxPageLimit
		default:
			page.Limit = n
		}
	}

	meta := params["includeMetadata"]
	page.IncludeMetadata = meta == "1" || meta == "true"

	return page
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
