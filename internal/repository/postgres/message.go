package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// PostgresMessageRepository implements the MessageRepository interface
type PostgresMessageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(config *RepositoryConfig) repositories.MessageRepository {
	return &PostgresMessageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Insert stores a new message
func (r *PostgresMessageRepository) Insert(ctx context.Context, msg *models.Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, email, phone, body, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Body,
		msg.Read,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %v: %w", err, domain.ErrPersistence)
	}

	return nil
}

// List returns all messages, newest first
func (r *PostgresMessageRepository) List(ctx context.Context) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, phone, body, read, created_at
		FROM %s
		ORDER BY created_at DESC
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list messages: %v: %w", err, domain.ErrPersistence)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Phone, &msg.Body, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %v: %w", err, domain.ErrPersistence)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %v: %w", err, domain.ErrPersistence)
	}

	return messages, nil
}

// Get retrieves a message by ID
func (r *PostgresMessageRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, phone, body, read, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Messages)

	var msg models.Message
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Phone, &msg.Body, &msg.Read, &msg.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get message: %v: %w", err, domain.ErrPersistence)
	}

	return &msg, nil
}

// SetRead updates the read flag of a message
func (r *PostgresMessageRepository) SetRead(ctx context.Context, id string, read bool) error {
	query := fmt.Sprintf(`UPDATE %s SET read = $2 WHERE id = $1`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, read)
	if err != nil {
		return fmt.Errorf("set message read: %v: %w", err, domain.ErrPersistence)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a message. A second delete of the same id fails with
// domain.ErrNotFound.
func (r *PostgresMessageRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete message: %v: %w", err, domain.ErrPersistence)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
