package auth

import "folio/internal/domain/models"

// TokenVerifier defines the interface for admin session token verification.
// This abstraction allows swapping the local HMAC verifier for a JWKS-backed
// one without the middleware knowing the difference.
type TokenVerifier interface {
	// VerifyToken validates a token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid
	// signature.
	VerifyToken(tokenString string) (*models.AdminClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP
	// connections for JWKS refresh).
	Close() error
}
