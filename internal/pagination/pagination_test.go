package pagination_test

import (
	"testing"

	"storefront/internal/pagination"

	"github.com/stretchr/testify/assert"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		expected pagination.Window
	}{
		{name: "first page", page: 1, limit: 10, expected: pagination.Window{Offset: 0, Limit: 10}},
		{name: "third page", page: 3, limit: 10, expected: pagination.Window{Offset: 20, Limit: 10}},
		{name: "page size one", page: 7, limit: 1, expected: pagination.Window{Offset: 6, Limit: 1}},
		{name: "page zero clamps offset", page: 0, limit: 10, expected: pagination.Window{Offset: 0, Limit: 10}},
		{name: "negative page clamps offset", page: -4, limit: 10, expected: pagination.Window{Offset: 0, Limit: 10}},
		{name: "zero limit", page: 2, limit: 0, expected: pagination.Window{Offset: 0, Limit: 0}},
		{name: "negative limit clamps", page: 2, limit: -5, expected: pagination.Window{Offset: 0, Limit: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, pagination.NewWindow(tc.page, tc.limit))
		})
	}
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		limit   int
		total   int64
		hasPrev bool
		hasNext bool
	}{
		{name: "first of many", page: 1, limit: 10, total: 50, hasPrev: false, hasNext: true},
		{name: "middle page", page: 3, limit: 10, total: 50, hasPrev: true, hasNext: true},
		{name: "last full page", page: 5, limit: 10, total: 50, hasPrev: true, hasNext: false},
		{name: "last partial page", page: 6, limit: 10, total: 51, hasPrev: true, hasNext: false},
		{name: "one short of last", page: 5, limit: 10, total: 51, hasPrev: true, hasNext: true},
		{name: "past the end", page: 9, limit: 10, total: 50, hasPrev: true, hasNext: false},
		{name: "empty table", page: 1, limit: 10, total: 0, hasPrev: false, hasNext: false},
		{name: "page zero", page: 0, limit: 10, total: 5, hasPrev: false, hasNext: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := pagination.Info(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.hasPrev, info.HasPreviousPage)
			assert.Equal(t, tc.hasNext, info.HasNextPage)
		})
	}
}

func TestInfoAgreesWithWindow(t *testing.T) {
	// Walking pages until HasNextPage turns false visits every row exactly once.
	const total = 23
	const limit = 5
	seen := 0
	for page := 1; ; page++ {
		w := pagination.NewWindow(page, limit)
		rows := total - w.Offset
		if rows > w.Limit {
			rows = w.Limit
		}
		seen += rows
		if !pagination.Info(page, limit, total).HasNextPage {
			break
		}
	}
	assert.Equal(t, total, seen)
}
