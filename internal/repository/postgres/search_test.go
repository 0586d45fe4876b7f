package pgrepo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-backend/internal/domain"
)

func TestBuildProductSearch_Defaults(t *testing.T) {
	s := buildProductSearch(domain.SearchQuery{})

	assert.Equal(t, "created_at", s.sort)
	assert.Equal(t, domain.SortDesc, s.sortDir)
	assert.Equal(t, "SELECT COUNT(*) FROM products", s.countSQL)
	assert.Equal(t,
		`SELECT id, name, price, quantity, created_at, updated_at FROM products ORDER BY created_at DESC, id COLLATE "C" ASC LIMIT $1 OFFSET $2`,
		s.listSQL)
	assert.Empty(t, s.filterArgs)
	assert.Equal(t, []any{15, 0}, s.listArgs())
}

func TestBuildProductSearch_UnknownSortFallsBack(t *testing.T) {
	s := buildProductSearch(domain.SearchQuery{Sort: "price; DROP TABLE products", SortDir: domain.SortAsc})

	assert.Equal(t, "created_at", s.sort)
	assert.Equal(t, domain.SortDesc, s.sortDir)
	assert.NotContains(t, s.listSQL, "DROP")
}

func TestBuildProductSearch_NameAscByDefault(t *testing.T) {
	s := buildProductSearch(domain.SearchQuery{Sort: "name", Page: 3, PerPage: 10})

	assert.Equal(t, domain.SortAsc, s.sortDir)
	assert.Contains(t, s.listSQL, `ORDER BY name COLLATE "C" ASC, created_at ASC, id COLLATE "C" ASC`)
	assert.Equal(t, []any{10, 20}, s.listArgs())
}

func TestBuildProductSearch_FilterIsEscaped(t *testing.T) {
	s := buildProductSearch(domain.SearchQuery{Filter: "50%_off"})

	assert.Equal(t, `SELECT COUNT(*) FROM products WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'`, s.countSQL)
	assert.Contains(t, s.listSQL, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{`50\%\_off`}, s.filterArgs)
	assert.Equal(t, []any{`50\%\_off`, 15, 0}, s.listArgs())
}

func TestBuildProductSearch_HugePageSaturatesOffset(t *testing.T) {
	s := buildProductSearch(domain.SearchQuery{Page: 1 << 62, PerPage: 3})

	assert.Equal(t, math.MaxInt, s.query.Offset())
	assert.Equal(t, []any{3, math.MaxInt}, s.listArgs())
}
