package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/evalhub/assessment-orders/internal/domain/model"
)

func TestBuildOrderFilterStatusPassedThroughLiterally(t *testing.T) {
	filter := BuildOrderFilter(map[string]string{"status": "PENDING"})
	if filter.Status != "PENDING" {
		t.Fatalf("expected status PENDING, got %q", filter.Status)
	}

	// Unknown statuses are not rejected; they become literal predicates that
	// match nothing.
	filter = BuildOrderFilter(map[string]string{"status": "SHIPPED"})
	if filter.Status != "SHIPPED" {
		t.Fatalf("expected literal SHIPPED, got %q", filter.Status)
	}
	if filter.MatchNone {
		t.Fatal("unknown status must not force MatchNone")
	}
}

func TestBuildOrderFilterValidIdentifiers(t *testing.T) {
	userID := uuid.New()
	assessmentID := uuid.New()

	filter := BuildOrderFilter(map[string]string{
		"userId":       userID.String(),
		"assessmentId": assessmentID.String(),
	})

	if filter.MatchNone {
		t.Fatal("valid identifiers must not force MatchNone")
	}
	if filter.UserID == nil || *filter.UserID != userID {
		t.Fatalf("expected user id %s, got %v", userID, filter.UserID)
	}
	if filter.AssessmentID == nil || *filter.AssessmentID != assessmentID {
		t.Fatalf("expected assessment id %s, got %v", assessmentID, filter.AssessmentID)
	}
}

func TestBuildOrderFilterMalformedIdentifiersFailClosed(t *testing.T) {
	cases := []struct {
		name   string
		params map[string]string
	}{
		{"bad user id", map[string]string{"userId": "not-a-uuid"}},
		{"bad assessment id", map[string]string{"assessmentId": "12345"}},
		{"bad user id with other filters", map[string]string{"userId": "zzz", "status": "PENDING"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filter := BuildOrderFilter(tc.params)
			if !filter.MatchNone {
				t.Fatal("expected MatchNone for malformed identifier")
			}
		})
	}
}

func TestBuildOrderFilterDates(t *testing.T) {
	filter := BuildOrderFilter(map[string]string{
		"fromDate": "2024-03-01",
		"toDate":   "2024-03-31T23:59:59Z",
	})
	if filter.From == nil || !filter.From.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from bound: %v", filter.From)
	}
	if filter.To == nil || filter.To.Day() != 31 {
		t.Fatalf("unexpected to bound: %v", filter.To)
	}

	// Unparsable bounds are dropped, not turned into errors or empty results.
	filter = BuildOrderFilter(map[string]string{"fromDate": "yesterday", "toDate": "31/12/2024"})
	if filter.From != nil || filter.To != nil {
		t.Fatalf("expected malformed dates to be dropped, got %v / %v", filter.From, filter.To)
	}
	if filter.MatchNone {
		t.Fatal("malformed dates must not force MatchNone")
	}
}

func TestBuildOrderFilterSearch(t *testing.T) {
	filter := BuildOrderFilter(map[string]string{"q": "  golang assessment  "})
	if filter.Search != "golang assessment" {
		t.Fatalf("expected trimmed search, got %q", filter.Search)
	}

	filter = BuildOrderFilter(map[string]string{"q": "   "})
	if filter.Search != "" {
		t.Fatalf("expected blank search to be absent, got %q", filter.Search)
	}
}

func TestBuildOrderSortAllowList(t *testing.T) {
	cases := []struct {
		sortBy string
		field  model.SortField
	}{
		{"createdAt", model.SortByCreatedAt},
		{"updatedAt", model.SortByUpdatedAt},
		{"price", model.SortByPrice},
		{"completedAt", model.SortByCompletedAt},
		{"metadata", model.SortByCreatedAt},
		{"id; DROP TABLE assessment_orders", model.SortByCreatedAt},
		{"", model.SortByCreatedAt},
	}

	for _, tc := range cases {
		sort := BuildOrderSort(map[string]string{"sortBy": tc.sortBy})
		if sort.Field != tc.field {
			t.Fatalf("sortBy %q: expected field %s, got %s", tc.sortBy, tc.field, sort.Field)
		}
	}
}

func TestBuildOrderSortDirection(t *testing.T) {
	if !BuildOrderSort(map[string]string{"sortDir": "asc"}).Ascending {
		t.Fatal("expected ascending for literal asc")
	}
	for _, dir := range []string{"ASC", "ascending", "desc", "", "1"} {
		if BuildOrderSort(map[string]string{"sortDir": dir}).Ascending {
			t.Fatalf("expected descending for sortDir %q", dir)
		}
	}
}

func TestBuildOrderPageClamps(t *testing.T) {
	cases := []struct {
		name   string
		params map[string]string
		page   int
		limit  int
	}{
		{"defaults", map[string]string{}, 1, 20},
		{"negative page", map[string]string{"page": "-3"}, 1, 20},
		{"zero page", map[string]string{"page": "0"}, 1, 20},
		{"non numeric page", map[string]string{"page": "abc"}, 1, 20},
		{"valid page", map[string]string{"page": "7"}, 7, 20},
		{"zero limit", map[string]string{"limit": "0"}, 1, 1},
		{"oversized limit", map[string]string{"limit": "500"}, 1, 200},
		{"non numeric limit", map[string]string{"limit": "lots"}, 1, 20},
		{"valid limit", map[string]string{"limit": "50"}, 1, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := BuildOrderPage(tc.params)
			if page.Page != tc.page || page.Limit != tc.limit {
				t.Fatalf("expected page=%d limit=%d, got page=%d limit=%d", tc.page, tc.limit, page.Page, page.Limit)
			}
		})
	}
}

func TestBuildOrderPageOffset(t *testing.T) {
	page := BuildOrderPage(map[string]string{"page": "3", "limit": "25"})
	if got := page.Offset(); got != 50 {
		t.Fatalf("expected offset 50, got %d", got)
	}
}

func TestBuildOrderPageIncludeMetadata(t *testing.T) {
	for value, want := range map[string]bool{"1": true, "true": true, "yes": false, "0": false, "": false} {
		page := BuildOrderPage(map[string]string{"includeMetadata": value})
		if page.IncludeMetadata != want {
			t.Fatalf("includeMetadata=%q: expected %v", value, want)
		}
	}
}
