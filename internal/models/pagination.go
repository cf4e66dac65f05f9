package models

// Pagination is the envelope returned next to every paginated listing.
type Pagination struct {
	TotalCount  int64 `json:"total_count"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
}

// NewPagination computes the last page the way the listings expose it.
func NewPagination(total int64, page, perPage int) Pagination {
	last := int(total) / perPage
	if int(total)%perPage != 0 {
		last++
	}
	if last < 1 {
		last = 1
	}
	return Pagination{
		TotalCount:  total,
		CurrentPage: page,
		LastPage:    last,
		PerPage:     perPage,
	}
}
