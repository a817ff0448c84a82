package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// docTypeMain is the fixed discriminator under which the singleton portfolio
// document is upserted.
const docTypeMain = "main"

// PostgresPortfolioRepository implements the PortfolioRepository interface
type PostgresPortfolioRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(config *RepositoryConfig) repositories.PortfolioRepository {
	return &PostgresPortfolioRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Get retrieves the singleton document. An absent row yields the default
// empty document rather than an error so first reads always succeed.
func (r *PostgresPortfolioRepository) Get(ctx context.Context) (*models.PortfolioDocument, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE doc_type = $1`, r.tables.Portfolio)
	return r.get(ctx, query)
}

// GetForUpdate retrieves the singleton document holding a row lock for the
// remainder of the surrounding transaction. Writers serialize here so a
// read-modify-write of one section cannot lose a concurrent sibling write.
func (r *PostgresPortfolioRepository) GetForUpdate(ctx context.Context) (*models.PortfolioDocument, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE doc_type = $1 FOR UPDATE`, r.tables.Portfolio)
	return r.get(ctx, query)
}

func (r *PostgresPortfolioRepository) get(ctx context.Context, query string) (*models.PortfolioDocument, error) {
	var data []byte
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, docTypeMain).Scan(&data)
	if err != nil {
		if IsPgNoRowsError(err) {
			return models.DefaultDocument(), nil
		}
		return nil, fmt.Errorf("get portfolio: %v: %w", err, domain.ErrPersistence)
	}

	doc := models.DefaultDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode portfolio: %v: %w", err, domain.ErrPersistence)
	}

	return doc, nil
}

// Put upserts the whole document under the fixed discriminator key.
func (r *PostgresPortfolioRepository) Put(ctx context.Context, doc *models.PortfolioDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode portfolio: %v: %w", err, domain.ErrPersistence)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (doc_type, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (doc_type) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, r.tables.Portfolio)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, docTypeMain, data); err != nil {
		return fmt.Errorf("put portfolio: %v: %w", err, domain.ErrPersistence)
	}

	return nil
}
