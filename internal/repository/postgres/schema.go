package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain/models"
)

// EnsureSchema creates the portfolio and messages tables if they do not
// exist, and seeds the singleton portfolio row. The portfolio table holds
// exactly one row per discriminator key; the whole document lives in a jsonb
// column so each section is an independently replaceable top-level field.
// The row must exist before traffic: SELECT ... FOR UPDATE on an absent row
// locks nothing, so concurrent first-ever writes could not serialize.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				doc_type   TEXT PRIMARY KEY,
				data       JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Portfolio),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         UUID PRIMARY KEY,
				name       TEXT NOT NULL,
				email      TEXT NOT NULL,
				phone      TEXT NOT NULL DEFAULT '',
				body       TEXT NOT NULL,
				read       BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Messages),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_created_at_idx ON %s (created_at DESC)
		`, tables.Messages, tables.Messages),
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	data, err := json.Marshal(models.DefaultDocument())
	if err != nil {
		return fmt.Errorf("encode default document: %w", err)
	}
	if _, err := pool.Exec(ctx, seedDocumentQuery(tables), docTypeMain, data); err != nil {
		return fmt.Errorf("seed portfolio row: %w", err)
	}

	return nil
}

// seedDocumentQuery inserts the singleton row only when it does not exist;
// an already-populated document is never overwritten.
func seedDocumentQuery(tables *TableNames) string {
	return fmt.Sprintf(`
		INSERT INTO %s (doc_type, data)
		VALUES ($1, $2)
		ON CONFLICT (doc_type) DO NOTHING
	`, tables.Portfolio)
}
