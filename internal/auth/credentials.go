package auth

import (
	"crypto/subtle"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"folio/internal/domain"
)

// Credentials checks the single admin login against the configured username
// and bcrypt password hash. The hash is produced by cmd/seed; the plaintext
// password never lives in configuration.
type Credentials struct {
	username     string
	passwordHash []byte
	logger       *slog.Logger
}

// NewCredentials creates the admin credential checker.
func NewCredentials(username, passwordHash string, logger *slog.Logger) *Credentials {
	return &Credentials{
		username:     username,
		passwordHash: []byte(passwordHash),
		logger:       logger,
	}
}

// Check validates a username/password pair. Both checks always run so a
// wrong username costs the same as a wrong password.
func (c *Credentials) Check(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password))

	if !userOK || passErr != nil {
		c.logger.Warn("login rejected", "username", username)
		return domain.ErrUnauthorized
	}
	return nil
}
