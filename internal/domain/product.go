package domain

import (
	"context"
	"math"
	"time"
)

// Product sortable fields
const (
	ProductSortName      = "name"
	ProductSortCreatedAt = "created_at"
)

type Product struct {
	Model
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// --- Interfaces ---

type ProductRepository interface {
	Repository[Product]

	FindByName(ctx context.Context, name string) (Product, error)
	// FindAllByIDs returns the products that exist, in request order. Unknown IDs are skipped.
	FindAllByIDs(ctx context.Context, ids []string) ([]Product, error)
	// ConflictName fails with a ConflictError when name is already taken.
	ConflictName(ctx context.Context, name string) error
}

// Errors shared by both product repository implementations.

func ProductNotFoundByID(id string) error {
	return NewNotFoundError("Product not found using %s", id)
}

func ProductNotFoundByName(name string) error {
	return NewNotFoundError("Product %s not found", name)
}

func ProductNameConflict(name string) error {
	return NewConflictError("Product name %s already in use", name)
}

// --- Usecase ---

// ProductInput carries the writable product fields from the transport layer.
type ProductInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Product value limits, matching the products table columns.
const (
	MaxProductPrice    = 9999999999.99 // NUMERIC(12, 2)
	MaxProductQuantity = math.MaxInt32 // INTEGER
)

// Validate reports InvalidInput unless name is set, price is a positive amount
// in whole cents and quantity is a positive int32.
func (in ProductInput) Validate() error {
	if in.Name == "" || !validPrice(in.Price) || in.Quantity <= 0 || in.Quantity > MaxProductQuantity {
		return NewInvalidInputError("Input data not provide or valid")
	}
	return nil
}

func validPrice(p float64) bool {
	if !(p > 0) || p > MaxProductPrice {
		return false
	}
	cents := p * 100
	return math.Abs(cents-math.Round(cents)) <= 1e-6+cents*1e-14
}

type ProductOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProductOutput(p Product) ProductOutput {
	return ProductOutput{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type ProductListOutput struct {
	Items      []ProductOutput
	Pagination Pagination
}

type ProductUsecase interface {
	CreateProduct(ctx context.Context, input ProductInput) (ProductOutput, error)
	GetProduct(ctx context.Context, id string) (ProductOutput, error)
	ListProducts(ctx context.Context, query SearchQuery) (ProductListOutput, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (ProductOutput, error)
	DeleteProduct(ctx context.Context, id string) error
}
