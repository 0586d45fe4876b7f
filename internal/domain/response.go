package domain

// Pagination describes the page a list response carries, including the
// sort and filter that were actually applied.
type Pagination struct {
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	TotalItems int     `json:"total_items"`
	TotalPages int     `json:"total_pages"`
	Sort       string  `json:"sort"`
	SortDir    SortDir `json:"sort_dir"`
	Filter     string  `json:"filter"`
}

// PaginationOf builds the list meta for a search result.
func PaginationOf[T any](r SearchResult[T]) Pagination {
	return Pagination{
		Page:       r.CurrentPage,
		PerPage:    r.PerPage,
		TotalItems: r.Total,
		TotalPages: r.LastPage(),
		Sort:       r.Sort,
		SortDir:    r.SortDir,
		Filter:     r.Filter,
	}
}

// Response standardizes API responses.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}
