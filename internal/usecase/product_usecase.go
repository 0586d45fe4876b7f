package usecase

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/logger"
)

type productUsecase struct {
	repo     domain.ProductRepository
	cache    cache.Cache[domain.Product]
	cacheTTL time.Duration
	timeout  time.Duration
}

func NewProductUsecase(repo domain.ProductRepository, c cache.Cache[domain.Product], cacheTTL, timeout time.Duration) domain.ProductUsecase {
	return &productUsecase{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		timeout:  timeout,
	}
}

func productCacheKey(id string) string {
	return fmt.Sprintf("product:id:%s", id)
}

func (u *productUsecase) CreateProduct(ctx context.Context, input domain.ProductInput) (domain.ProductOutput, error) {
	if err := input.Validate(); err != nil {
		return domain.ProductOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.repo.ConflictName(ctx, input.Name); err != nil {
		return domain.ProductOutput{}, err
	}

	product := u.repo.Create(domain.Product{
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	stored, err := u.repo.Insert(ctx, product)
	if err != nil {
		return domain.ProductOutput{}, err
	}

	logger.WithContext(ctx).Info().Str("product_id", stored.ID).Msg("product created")
	return domain.NewProductOutput(stored), nil
}

func (u *productUsecase) GetProduct(ctx context.Context, id string) (domain.ProductOutput, error) {
	key := productCacheKey(id)
	if p, found := u.cache.Get(key); found {
		return domain.NewProductOutput(p), nil
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ProductOutput{}, err
	}

	u.cache.Set(key, p, u.cacheTTL)
	return domain.NewProductOutput(p), nil
}

func (u *productUsecase) ListProducts(ctx context.Context, query domain.SearchQuery) (domain.ProductListOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	res, err := u.repo.Search(ctx, query)
	if err != nil {
		return domain.ProductListOutput{}, err
	}

	items := make([]domain.ProductOutput, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, domain.NewProductOutput(p))
	}
	return domain.ProductListOutput{
		Items:      items,
		Pagination: domain.PaginationOf(res),
	}, nil
}

func (u *productUsecase) UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (domain.ProductOutput, error) {
	if err := input.Validate(); err != nil {
		return domain.ProductOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	current, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ProductOutput{}, err
	}
	// Names are unique, so a changed name that exists belongs to another product.
	if input.Name != current.Name {
		if err := u.repo.ConflictName(ctx, input.Name); err != nil {
			return domain.ProductOutput{}, err
		}
	}

	current.Name = input.Name
	current.Price = input.Price
	current.Quantity = input.Quantity

	updated, err := u.repo.Update(ctx, current)
	if err != nil {
		return domain.ProductOutput{}, err
	}

	u.cache.Delete(productCacheKey(id))
	return domain.NewProductOutput(updated), nil
}

func (u *productUsecase) DeleteProduct(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}

	u.cache.Delete(productCacheKey(id))
	logger.WithContext(ctx).Info().Str("product_id", id).Msg("product deleted")
	return nil
}
