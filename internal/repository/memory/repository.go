package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/clock"
	"catalog-backend/pkg/utils"
)

// Record is satisfied by *T for any T that embeds domain.Model.
type Record[T any] interface {
	*T
	Meta() *domain.Model
}

// Schema configures how a collection is searched.
type Schema[T any] struct {
	// Resource names the record type in error messages, e.g. "Product".
	Resource string
	// SortableFields is the allow-list of fields a caller may sort by.
	SortableFields map[string]func(a, b T) int
	// DefaultSort is applied when the requested field is missing or not allow-listed.
	// Empty keeps insertion order.
	DefaultSort    string
	DefaultSortDir domain.SortDir
	// FilterField returns the value a filter is matched against. Nil disables filtering.
	FilterField func(T) string
	// TieBreak orders records the sort field considers equal. It always applies
	// ascending, whatever the sort direction.
	TieBreak func(a, b T) int
	// Unique reports a uniqueness clash between a stored record and a candidate
	// with a different ID. Insert and Update run it under the write lock.
	Unique func(stored, candidate T) error
}

func ByString[T any](field func(T) string) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(field(a), field(b)) }
}

func ByTime[T any](field func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return field(a).Compare(field(b)) }
}

func ByNumber[T any, N cmp.Ordered](field func(T) N) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(field(a), field(b)) }
}

// Repository is an in-memory collection kept in insertion order.
type Repository[T any, PT Record[T]] struct {
	mu     sync.RWMutex
	items  []T
	schema Schema[T]
	clock  clock.Clock
	ids    utils.IDGenerator
}

func NewRepository[T any, PT Record[T]](schema Schema[T], clk clock.Clock, ids utils.IDGenerator) *Repository[T, PT] {
	if schema.Resource == "" {
		schema.Resource = "Record"
	}
	return &Repository[T, PT]{
		schema: schema,
		clock:  clk,
		ids:    ids,
	}
}

func (r *Repository[T, PT]) Create(props T) T {
	now := r.now()
	m := PT(&props).Meta()
	m.ID = r.ids.NewID()
	m.CreatedAt = now
	m.UpdatedAt = now
	return props
}

func (r *Repository[T, PT]) Insert(ctx context.Context, model T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := PT(&model).Meta().ID
	if r.indexOf(id) >= 0 {
		var zero T
		return zero, domain.NewConflictError("%s id %s already in use", r.schema.Resource, id)
	}
	if err := r.checkUnique(model); err != nil {
		var zero T
		return zero, err
	}
	r.items = append(r.items, model)
	return model, nil
}

func (r *Repository[T, PT]) FindByID(ctx context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		var zero T
		return zero, r.notFound(id)
	}
	return r.items[i], nil
}

// Update replaces the stored record with model. ID and CreatedAt are kept from
// the stored copy and UpdatedAt is set to now.
func (r *Repository[T, PT]) Update(ctx context.Context, model T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := PT(&model).Meta()
	i := r.indexOf(m.ID)
	if i < 0 {
		var zero T
		return zero, r.notFound(m.ID)
	}
	if err := r.checkUnique(model); err != nil {
		var zero T
		return zero, err
	}
	m.CreatedAt = PT(&r.items[i]).Meta().CreatedAt
	m.UpdatedAt = r.now()
	r.items[i] = model
	return model, nil
}

func (r *Repository[T, PT]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return r.notFound(id)
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

func (r *Repository[T, PT]) Search(ctx context.Context, query domain.SearchQuery) (domain.SearchResult[T], error) {
	q := query.Normalize()

	r.mu.RLock()
	items := slices.Clone(r.items)
	r.mu.RUnlock()

	filter := q.Filter
	if r.schema.FilterField == nil {
		filter = ""
	}
	sortField, sortDir := r.resolveSort(q.Sort, q.SortDir)

	filtered := r.applyFilter(items, filter)
	ordered := r.applySort(filtered, sortField, sortDir)

	return domain.SearchResult[T]{
		Items:       r.applyPaginate(ordered, q.Page, q.PerPage),
		Total:       len(filtered),
		CurrentPage: q.Page,
		PerPage:     q.PerPage,
		Sort:        sortField,
		SortDir:     sortDir,
		Filter:      filter,
	}, nil
}

// resolveSort picks the field and direction Search will apply. An empty field
// means insertion order.
func (r *Repository[T, PT]) resolveSort(field string, dir domain.SortDir) (string, domain.SortDir) {
	if _, ok := r.schema.SortableFields[field]; ok && field != "" {
		if dir == "" {
			dir = domain.SortAsc
		}
		return field, dir
	}
	if _, ok := r.schema.SortableFields[r.schema.DefaultSort]; ok {
		dir := r.schema.DefaultSortDir
		if dir == "" {
			dir = domain.SortAsc
		}
		return r.schema.DefaultSort, dir
	}
	return "", ""
}

func (r *Repository[T, PT]) applyFilter(items []T, filter string) []T {
	if filter == "" || r.schema.FilterField == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if utils.ContainsFold(r.schema.FilterField(item), filter) {
			out = append(out, item)
		}
	}
	return out
}

func (r *Repository[T, PT]) applySort(items []T, field string, dir domain.SortDir) []T {
	compare, ok := r.schema.SortableFields[field]
	if field == "" || !ok {
		return items
	}
	primary := compare
	if dir == domain.SortDesc {
		primary = func(a, b T) int { return compare(b, a) }
	}
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if c := primary(a, b); c != 0 || r.schema.TieBreak == nil {
			return c
		}
		return r.schema.TieBreak(a, b)
	})
	return out
}

func (r *Repository[T, PT]) applyPaginate(items []T, page, perPage int) []T {
	start := domain.SearchQuery{Page: page, PerPage: perPage}.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + min(perPage, len(items)-start)
	return slices.Clone(items[start:end])
}

// find returns the first stored record matching pred.
func (r *Repository[T, PT]) find(pred func(T) bool) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// checkUnique must be called with mu held.
func (r *Repository[T, PT]) checkUnique(candidate T) error {
	if r.schema.Unique == nil {
		return nil
	}
	id := PT(&candidate).Meta().ID
	for _, stored := range r.items {
		if PT(&stored).Meta().ID == id {
			continue
		}
		if err := r.schema.Unique(stored, candidate); err != nil {
			return err
		}
	}
	return nil
}

// now is the clock time at the microsecond precision a database timestamp keeps.
func (r *Repository[T, PT]) now() time.Time {
	return r.clock.Now().Truncate(time.Microsecond)
}

// indexOf must be called with mu held.
func (r *Repository[T, PT]) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(item T) bool {
		return PT(&item).Meta().ID == id
	})
}

func (r *Repository[T, PT]) notFound(id string) error {
	return domain.NewNotFoundError("%s not found using %s", r.schema.Resource, id)
}
