package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-backend/internal/domain"
	"catalog-backend/pkg/clock"
	"catalog-backend/pkg/logger"
	"catalog-backend/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("catalog-backend/internal/repository/postgres")

const productColumns = "id, name, price, quantity, created_at, updated_at"

// SQLSTATE codes
const (
	uniqueViolation        = "23505"
	checkViolation         = "23514"
	numericValueOutOfRange = "22003"
)

type productRepository struct {
	db    DBTX
	clock clock.Clock
	ids   utils.IDGenerator
}

func NewProductRepository(db DBTX, clk clock.Clock, ids utils.IDGenerator) domain.ProductRepository {
	return &productRepository{
		db:    db,
		clock: clk,
		ids:   ids,
	}
}

// now is the clock time at TIMESTAMPTZ precision, so what Insert returns is
// what a later read returns.
func (r *productRepository) now() time.Time {
	return r.clock.Now().Truncate(time.Microsecond)
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *productRepository) Create(props domain.Product) domain.Product {
	now := r.now()
	props.ID = r.ids.NewID()
	props.CreatedAt = now
	props.UpdatedAt = now
	return props
}

func (r *productRepository) Insert(ctx context.Context, p domain.Product) (domain.Product, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Price, p.Quantity, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, mapWriteError(err, p)
	}
	return p, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ProductNotFoundByID(id)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("find product %s: %w", id, err)
	}
	return p, nil
}

func (r *productRepository) FindByName(ctx context.Context, name string) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ProductNotFoundByName(name)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("find product by name: %w", err)
	}
	return p, nil
}

func (r *productRepository) FindAllByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	found, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}

	byID := make(map[string]domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	products := make([]domain.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *productRepository) ConflictName(ctx context.Context, name string) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check product name: %w", err)
	}
	if exists {
		return domain.ProductNameConflict(name)
	}
	return nil
}

// Update overwrites the mutable columns. created_at is never touched.
func (r *productRepository) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	updated, err := scanProduct(r.db.QueryRow(ctx,
		`UPDATE products SET name = $2, price = $3, quantity = $4, updated_at = $5
		 WHERE id = $1 RETURNING `+productColumns,
		p.ID, p.Name, p.Price, p.Quantity, r.now(),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ProductNotFoundByID(p.ID)
	}
	if err != nil {
		return domain.Product{}, mapWriteError(err, p)
	}
	return updated, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ProductNotFoundByID(id)
	}
	return nil
}

func (r *productRepository) Search(ctx context.Context, query domain.SearchQuery) (_ domain.SearchResult[domain.Product], err error) {
	s := buildProductSearch(query)
	start := time.Now()

	ctx, span := tracer.Start(ctx, "products.search")
	span.SetAttributes(
		attribute.String("search.sort", s.sort),
		attribute.String("search.sort_dir", string(s.sortDir)),
		attribute.Int("search.page", s.query.Page),
		attribute.Int("search.per_page", s.query.PerPage),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var total int64
	if err = r.db.QueryRow(ctx, s.countSQL, s.filterArgs...).Scan(&total); err != nil {
		logger.DBQuery(s.countSQL, time.Since(start), err)
		return domain.SearchResult[domain.Product]{}, fmt.Errorf("count products: %w", err)
	}

	items := []domain.Product{}
	if total > int64(s.query.Offset()) {
		rows, err := r.db.Query(ctx, s.listSQL, s.listArgs()...)
		if err != nil {
			logger.DBQuery(s.listSQL, time.Since(start), err)
			return domain.SearchResult[domain.Product]{}, fmt.Errorf("search products: %w", err)
		}
		if items, err = collectProducts(rows); err != nil {
			return domain.SearchResult[domain.Product]{}, fmt.Errorf("search products: %w", err)
		}
	}
	logger.DBQuery(s.listSQL, time.Since(start), nil)

	return domain.SearchResult[domain.Product]{
		Items:       items,
		Total:       int(total),
		CurrentPage: s.query.Page,
		PerPage:     s.query.PerPage,
		Sort:        s.sort,
		SortDir:     s.sortDir,
		Filter:      s.query.Filter,
	}, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func mapWriteError(err error, p domain.Product) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("write product %s: %w", p.ID, err)
	}
	switch pgErr.Code {
	case uniqueViolation:
		if pgErr.ConstraintName == "products_pkey" {
			return domain.ConflictError{Msg: fmt.Sprintf("Product id %s already in use", p.ID), Err: err}
		}
		return domain.ConflictError{Msg: fmt.Sprintf("Product name %s already in use", p.Name), Err: err}
	case checkViolation, numericValueOutOfRange:
		return domain.NewInvalidInputError("Input data not provide or valid")
	}
	return fmt.Errorf("write product %s: %w", p.ID, err)
}
