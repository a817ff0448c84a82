package repositories

import (
	"context"

	"folio/internal/domain/models"
)

// PortfolioRepository owns the singleton portfolio document. Reads of an
// absent document return the default empty document, never an error.
type PortfolioRepository interface {
	// Get returns the current document, or models.DefaultDocument() if none
	// has been stored yet.
	Get(ctx context.Context) (*models.PortfolioDocument, error)

	// GetForUpdate is Get with a row lock. Only valid inside a transaction
	// started by a TransactionManager; concurrent writers serialize here so
	// read-modify-write of one section cannot clobber a sibling section.
	GetForUpdate(ctx context.Context) (*models.PortfolioDocument, error)

	// Put upserts the whole document under the fixed discriminator key.
	Put(ctx context.Context, doc *models.PortfolioDocument) error
}

// MessageRepository stores contact messages independent of the portfolio
// document.
type MessageRepository interface {
	Insert(ctx context.Context, msg *models.Message) error

	// List returns all messages, newest first.
	List(ctx context.Context) ([]models.Message, error)

	Get(ctx context.Context, id string) (*models.Message, error)

	// SetRead updates the read flag. Returns domain.ErrNotFound if the id
	// does not exist.
	SetRead(ctx context.Context, id string, read bool) error

	// Delete removes a message. Returns domain.ErrNotFound if the id does
	// not exist; deleting twice fails the second time.
	Delete(ctx context.Context, id string) error
}
