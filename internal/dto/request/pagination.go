package request

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// PaginatedRequest carries list paging for bookings and products. Zero
// values fall back to page 1 with defaultPerPage items.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// Offset is the row offset of the requested page.
func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit clamps per_page into [1, maxPerPage].
func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return defaultPerPage
	}
	if p.PerPage > maxPerPage {
		return maxPerPage
	}
	return p.PerPage
}
