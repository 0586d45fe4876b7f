package memory

import (
	"cmp"
	"context"
	"time"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/clock"
	"catalog-backend/pkg/utils"
)

// ProductSchema sorts by name or creation time, newest first by default, and
// filters on the product name. Ties fall back to created_at then id, ascending,
// and names are unique.
func ProductSchema() Schema[domain.Product] {
	return Schema[domain.Product]{
		Resource: "Product",
		SortableFields: map[string]func(a, b domain.Product) int{
			domain.ProductSortName:      ByString(func(p domain.Product) string { return p.Name }),
			domain.ProductSortCreatedAt: ByTime(func(p domain.Product) time.Time { return p.CreatedAt }),
		},
		DefaultSort:    domain.ProductSortCreatedAt,
		DefaultSortDir: domain.SortDesc,
		FilterField:    func(p domain.Product) string { return p.Name },
		TieBreak: func(a, b domain.Product) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		},
		Unique: func(stored, candidate domain.Product) error {
			if stored.Name == candidate.Name {
				return domain.ProductNameConflict(candidate.Name)
			}
			return nil
		},
	}
}

// ProductRepository is the in-memory domain.ProductRepository.
type ProductRepository struct {
	*Repository[domain.Product, *domain.Product]
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(clk clock.Clock, ids utils.IDGenerator) *ProductRepository {
	return &ProductRepository{
		Repository: NewRepository[domain.Product, *domain.Product](ProductSchema(), clk, ids),
	}
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (domain.Product, error) {
	p, ok := r.find(func(p domain.Product) bool { return p.Name == name })
	if !ok {
		return domain.Product{}, domain.ProductNotFoundByName(name)
	}
	return p, nil
}

func (r *ProductRepository) FindAllByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.find(func(p domain.Product) bool { return p.ID == id }); ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *ProductRepository) ConflictName(ctx context.Context, name string) error {
	if _, ok := r.find(func(p domain.Product) bool { return p.Name == name }); ok {
		return domain.ProductNameConflict(name)
	}
	return nil
}
