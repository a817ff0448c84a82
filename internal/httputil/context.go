package httputil

import (
	"context"
	"net/http"

	"folio/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const claimsKey contextKey = "adminClaims"

// WithClaims adds verified admin claims to the request context
func WithClaims(r *http.Request, claims *models.AdminClaims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	return r.WithContext(ctx)
}

// GetClaims retrieves admin claims from context, or nil if the request was
// not authenticated.
func GetClaims(r *http.Request) *models.AdminClaims {
	claims, _ := r.Context().Value(claimsKey).(*models.AdminClaims)
	return claims
}
