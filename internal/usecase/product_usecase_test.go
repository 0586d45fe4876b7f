package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domain"
	"catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/repository/memory"
	"catalog-backend/pkg/clock"
	"catalog-backend/pkg/utils"
)

type fixture struct {
	uc    domain.ProductUsecase
	repo  *memory.ProductRepository
	clock *clock.Fake
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	repo := memory.NewProductRepository(clk, &utils.SequenceGenerator{Prefix: "prod"})
	c := cache.NewMemoryCache[domain.Product](time.Minute, time.Minute)
	return fixture{
		uc:    NewProductUsecase(repo, c, time.Minute, time.Second),
		repo:  repo,
		clock: clk,
	}
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: "Tv", Price: 450, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "prod-1", out.ID)
	assert.Equal(t, "Tv", out.Name)
	assert.Equal(t, 450.0, out.Price)
	assert.Equal(t, 2, out.Quantity)
	assert.Equal(t, f.clock.Now(), out.CreatedAt)

	stored, err := f.repo.FindByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tv", stored.Name)
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	f := newFixture(t)

	for _, in := range []domain.ProductInput{
		{Name: "", Price: 1, Quantity: 1},
		{Name: "Tv", Price: 0, Quantity: 1},
		{Name: "Tv", Price: -3, Quantity: 1},
		{Name: "Tv", Price: 1, Quantity: 0},
		{Name: "Tv", Price: 1.005, Quantity: 1},
	} {
		_, err := f.uc.CreateProduct(context.Background(), in)
		require.Error(t, err)
		assert.True(t, domain.IsInvalidInput(err))
		assert.EqualError(t, err, "Input data not provide or valid")
	}
}

func TestCreateProduct_SameNameTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	in := domain.ProductInput{Name: "Tv", Price: 450, Quantity: 2}

	_, err := f.uc.CreateProduct(context.Background(), in)
	require.NoError(t, err)

	_, err = f.uc.CreateProduct(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.EqualError(t, err, "Product name Tv already in use")
}

func TestGetProduct(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: "Tv", Price: 450, Quantity: 2})
	require.NoError(t, err)

	got, err := f.uc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = f.uc.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), "missing")
}

func TestGetProduct_ServedFromCache(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: "Tv", Price: 450, Quantity: 2})
	require.NoError(t, err)

	_, err = f.uc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)

	// Removing behind the usecase's back leaves the cached copy visible.
	require.NoError(t, f.repo.Delete(context.Background(), created.ID))
	got, err := f.uc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: "Tv", Price: 450, Quantity: 2})
	require.NoError(t, err)
	_, err = f.uc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)

	later := f.clock.Advance(time.Hour)
	updated, err := f.uc.UpdateProduct(context.Background(), created.ID, domain.ProductInput{Name: "Smart Tv", Price: 500, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "Smart Tv", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)

	got, err := f.uc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smart Tv", got.Name)
}

func TestUpdateProduct_KeepingOwnNameIsAllowed(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: "Tv", Price: 450, Quantity: 2})
	require.NoError(t, err)

	updated, err := f.uc.UpdateProduct(context.Background(), created.ID, domain.ProductInput{Name: "Tv", Price: 300, Quantity: 9})
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.Price)
}

func TestUpdateProduct_Errors(t *testing.T) {
	f := newFixture(t)
	tv, err := f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: "Tv", Price: 450, Quantity: 2})
	require.NoError(t, err)
	_, err = f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: "Radio", Price: 40, Quantity: 5})
	require.NoError(t, err)

	_, err = f.uc.UpdateProduct(context.Background(), "missing", domain.ProductInput{Name: "X", Price: 1, Quantity: 1})
	assert.True(t, domain.IsNotFound(err))

	_, err = f.uc.UpdateProduct(context.Background(), tv.ID, domain.ProductInput{Name: "Radio", Price: 1, Quantity: 1})
	assert.True(t, domain.IsConflict(err))

	_, err = f.uc.UpdateProduct(context.Background(), tv.ID, domain.ProductInput{Name: "Tv"})
	assert.True(t, domain.IsInvalidInput(err))
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: "Tv", Price: 450, Quantity: 2})
	require.NoError(t, err)
	_, err = f.uc.GetProduct(context.Background(), created.ID)
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteProduct(context.Background(), created.ID))

	_, err = f.uc.GetProduct(context.Background(), created.ID)
	assert.True(t, domain.IsNotFound(err))

	err = f.uc.DeleteProduct(context.Background(), created.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestListProducts(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Tv", "Radio", "Smart Tv"} {
		_, err := f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: name, Price: 10, Quantity: 1})
		require.NoError(t, err)
		f.clock.Advance(time.Second)
	}

	out, err := f.uc.ListProducts(context.Background(), domain.SearchQuery{Filter: "tv", Sort: "name"})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Smart Tv", out.Items[0].Name)
	assert.Equal(t, "Tv", out.Items[1].Name)
	assert.Equal(t, domain.Pagination{
		Page: 1, PerPage: 15, TotalItems: 2, TotalPages: 1,
		Sort: "name", SortDir: domain.SortAsc, Filter: "tv",
	}, out.Pagination)
}

func TestListProducts_DefaultsToNewestFirst(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"A", "B", "C"} {
		_, err := f.uc.CreateProduct(context.Background(), domain.ProductInput{Name: name, Price: 10, Quantity: 1})
		require.NoError(t, err)
		f.clock.Advance(time.Second)
	}

	out, err := f.uc.ListProducts(context.Background(), domain.SearchQuery{PerPage: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "C", out.Items[0].Name)
	assert.Equal(t, "B", out.Items[1].Name)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	assert.Equal(t, domain.SortDesc, out.Pagination.SortDir)
}
