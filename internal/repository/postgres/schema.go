package pgrepo

import (
	"context"
	"fmt"
)

const productsDDL = `
CREATE TABLE IF NOT EXISTS products (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	price      NUMERIC(12, 2) NOT NULL CHECK (price > 0),
	quantity   INTEGER NOT NULL CHECK (quantity > 0),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS products_name_key ON products (name);
CREATE INDEX IF NOT EXISTS products_created_at_idx ON products (created_at);
`

// EnsureSchema creates the tables the repositories expect. It is idempotent.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, productsDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
