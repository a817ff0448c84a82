package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"folio/internal/domain"
	"folio/internal/domain/models"
)

// SessionTTL is how long an issued admin session token stays valid.
const SessionTTL = 24 * time.Hour

// HMACVerifier issues and verifies HS256 admin session tokens signed with a
// locally held secret.
type HMACVerifier struct {
	secret []byte
	logger *slog.Logger
}

// NewHMACVerifier creates a verifier/issuer around the configured secret.
func NewHMACVerifier(secret string, logger *slog.Logger) (*HMACVerifier, error) {
	if secret == "" {
		return nil, errors.New("auth secret cannot be empty")
	}
	return &HMACVerifier{secret: []byte(secret), logger: logger}, nil
}

// IssueToken mints a session token for the named admin.
func (v *HMACVerifier) IssueToken(username string) (string, error) {
	now := time.Now()
	claims := &models.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		Role: models.RoleAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a session token and extracts its claims.
func (v *HMACVerifier) VerifyToken(tokenString string) (*models.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Pin the algorithm to prevent confusion attacks
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		v.logger.Debug("token parse failed", "error", err.Error())
		return nil, domain.ErrUnauthorized
	}

	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.AdminClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if claims.Subject == "" || claims.Role != models.RoleAdmin {
		v.logger.Debug("token has invalid claims", "subject", claims.Subject, "role", claims.Role)
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// Close is a no-op; the verifier holds no external resources.
func (v *HMACVerifier) Close() error {
	return nil
}
