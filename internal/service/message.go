package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"folio/internal/config"
	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// MessageService handles contact-form intake and the admin's read/unread/
// delete lifecycle.
type MessageService struct {
	repo   repositories.MessageRepository
	logger *slog.Logger
}

// NewMessageService creates a new message service.
func NewMessageService(repo repositories.MessageRepository, logger *slog.Logger) *MessageService {
	return &MessageService{
		repo:   repo,
		logger: logger,
	}
}

// SubmitRequest is a contact-form submission. Phone is optional and
// unvalidated.
type SubmitRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Body  string `json:"message"`
}

// Submit validates a contact-form submission and stores it unread.
// Nothing is persisted on a validation failure.
func (s *MessageService) Submit(ctx context.Context, req *SubmitRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Body = strings.TrimSpace(req.Body)

	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxContactNameLength)),
		validation.Field(&req.Email, validation.Required, validation.Length(3, config.MaxContactEmailLength), is.EmailFormat),
		validation.Field(&req.Body, validation.Required, validation.Length(1, config.MaxContactBodyLength)),
	)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}

	msg := &models.Message{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Body:      req.Body,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, msg); err != nil {
		return "", err
	}

	s.logger.Info("message received", "id", msg.ID)
	return msg.ID, nil
}

// List returns all messages, newest first.
func (s *MessageService) List(ctx context.Context) ([]models.Message, error) {
	return s.repo.List(ctx)
}

// ToggleRead flips the read flag and returns the new state. A missing id
// fails with domain.ErrNotFound.
func (s *MessageService) ToggleRead(ctx context.Context, id string) (bool, error) {
	msg, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}

	newState := !msg.Read
	if err := s.repo.SetRead(ctx, id, newState); err != nil {
		return false, err
	}

	return newState, nil
}

// Delete removes a message. Deletion is strict, not idempotent: a second
// delete of the same id fails with domain.ErrNotFound.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
