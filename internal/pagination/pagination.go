// Package pagination turns a 1-based page number and a page size into a
// storage window and derives the navigation flags of a listing response.
package pagination

// Window is the offset/limit pair applied to a listing query.
type Window struct {
	Offset int
	Limit  int
}

// NewWindow skips (page-1)*limit rows and keeps at most limit rows.
// Negative offsets and limits are clamped to zero.
func NewWindow(page, limit int) Window {
	if limit < 0 {
		limit = 0
	}
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return Window{Offset: offset, Limit: limit}
}

// PageInfo tells a client whether neighbouring pages exist.
type PageInfo struct {
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// Info computes the page flags from the requested page, the page size and the
// number of rows matching the active filter.
func Info(page, limit int, totalItems int64) PageInfo {
	return PageInfo{
		HasPreviousPage: page > 1,
		HasNextPage:     int64(page)*int64(limit) < totalItems,
	}
}
