package domain

import (
	"context"
	"math"
	"strings"
)

// Search defaults
const (
	DefaultPage    = 1
	DefaultPerPage = 15
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ParseSortDir accepts "asc"/"desc" in any case. Anything else yields "".
func ParseSortDir(s string) SortDir {
	switch SortDir(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	}
	return ""
}

// SearchQuery describes a filtered, sorted, paginated read.
// Empty Sort, SortDir and Filter mean "not requested".
type SearchQuery struct {
	Page    int
	PerPage int
	Sort    string
	SortDir SortDir
	Filter  string
}

// Normalize replaces missing or non-positive paging values with the defaults.
func (q SearchQuery) Normalize() SearchQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	q.SortDir = ParseSortDir(string(q.SortDir))
	return q
}

// Offset returns the number of matching records skipped before the page starts.
// It saturates at math.MaxInt, which is past the end of any collection.
func (q SearchQuery) Offset() int {
	if q.Page < 1 || q.PerPage < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PerPage {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PerPage
}

// SearchResult is one page of a search. Sort, SortDir and Filter echo what was
// actually applied, including fallbacks.
type SearchResult[T any] struct {
	Items       []T     `json:"items"`
	Total       int     `json:"total"`
	CurrentPage int     `json:"current_page"`
	PerPage     int     `json:"per_page"`
	Sort        string  `json:"sort"`
	SortDir     SortDir `json:"sort_dir"`
	Filter      string  `json:"filter"`
}

// LastPage is the number of the final non-empty page (at least 1).
func (r SearchResult[T]) LastPage() int {
	if r.Total == 0 || r.PerPage < 1 {
		return 1
	}
	return (r.Total + r.PerPage - 1) / r.PerPage
}

// Repository is the CRUD and search contract shared by the in-memory and
// database-backed collections.
type Repository[T any] interface {
	// Create builds a new record with a fresh ID and timestamps. It does not store it.
	Create(props T) T
	Insert(ctx context.Context, model T) (T, error)
	FindByID(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, model T) (T, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query SearchQuery) (SearchResult[T], error)
}
