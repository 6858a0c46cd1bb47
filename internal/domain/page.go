package domain

// DefaultPageSize matches the original mobile list screens (4 cards per page).
const DefaultPageSize = 4

// maxPageSize caps page size to prevent runaway queries.
const maxPageSize = 100

// PageParams carries page/size values from the caller to the repo layer.
// Page is zero-based; the repo is stateless between calls and the current
// page belongs to the caller, not the repository.
type PageParams struct {
	// Page is the zero-based page index.
	Page int
	// Size is the maximum number of items to return.
	Size int
}

// NewPageParams normalizes raw page/size values.
// Negative pages clamp to 0; non-positive sizes fall back to DefaultPageSize;
// sizes above 100 are capped.
func NewPageParams(page, size int) PageParams {
	p := PageParams{Page: page, Size: size}
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

// Offset returns the row offset for a SQL OFFSET clause.
func (p PageParams) Offset() int {
	return p.Page * p.Size
}
