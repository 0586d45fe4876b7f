package pgrepo

import (
	"fmt"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/utils"
)

// productSortColumns is the sort allow-list. name compares byte-wise so the
// order matches the in-memory repository regardless of database collation.
var productSortColumns = map[string]string{
	domain.ProductSortName:      `name COLLATE "C"`,
	domain.ProductSortCreatedAt: "created_at",
}

const (
	productDefaultSort    = domain.ProductSortCreatedAt
	productDefaultSortDir = domain.SortDesc
)

type productSearch struct {
	query      domain.SearchQuery
	sort       string
	sortDir    domain.SortDir
	countSQL   string
	listSQL    string
	filterArgs []any
}

func (s productSearch) listArgs() []any {
	args := make([]any, 0, len(s.filterArgs)+2)
	args = append(args, s.filterArgs...)
	return append(args, s.query.PerPage, s.query.Offset())
}

func buildProductSearch(query domain.SearchQuery) productSearch {
	s := productSearch{query: query.Normalize()}

	s.sort, s.sortDir = s.query.Sort, s.query.SortDir
	if _, ok := productSortColumns[s.sort]; !ok {
		s.sort, s.sortDir = productDefaultSort, productDefaultSortDir
	}
	if s.sortDir == "" {
		s.sortDir = domain.SortAsc
	}

	where := ""
	if s.query.Filter != "" {
		s.filterArgs = []any{utils.EscapeLike(s.query.Filter)}
		where = ` WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'`
	}

	dir := "ASC"
	if s.sortDir == domain.SortDesc {
		dir = "DESC"
	}
	order := fmt.Sprintf(" ORDER BY %s %s, ", productSortColumns[s.sort], dir)
	if s.sort == domain.ProductSortCreatedAt {
		order += `id COLLATE "C" ASC`
	} else {
		order += `created_at ASC, id COLLATE "C" ASC`
	}

	n := len(s.filterArgs)
	s.countSQL = "SELECT COUNT(*) FROM products" + where
	s.listSQL = "SELECT " + productColumns + " FROM products" + where + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	return s
}
