package middleware

import (
	"net/http"
	"strings"

	"folio/internal/auth"
	"folio/internal/httputil"
)

// AuthContext verifies a Bearer token when one is present and stashes the
// claims in the request context. It never rejects: public routes stay open,
// and RequireAdmin enforces presence where the write surface demands it.
// This split exists because POST /api/messages multiplexes a public action
// (submit) with admin-only ones.
func AuthContext(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if claims, err := verifier.VerifyToken(token); err == nil {
					r = httputil.WithClaims(r, claims)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests that carry no verified admin claims.
// Every mutating endpoint sits behind this; the gate lives on the server,
// not in the browser.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if httputil.GetClaims(r) == nil {
			httputil.RespondError(w, http.StatusUnauthorized, "admin session required")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
