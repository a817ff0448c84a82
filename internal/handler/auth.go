package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/auth"
	"folio/internal/httputil"
)

// AuthHandler issues admin session tokens
type AuthHandler struct {
	credentials *auth.Credentials
	issuer      *auth.HMACVerifier
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(credentials *auth.Credentials, issuer *auth.HMACVerifier, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		issuer:      issuer,
		logger:      logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the admin credentials and returns a session token.
// When sessions come from an external identity provider there is no local
// issuer and this endpoint does not exist.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.issuer == nil {
		httputil.RespondError(w, http.StatusNotFound, "local login is disabled")
		return
	}

	var req loginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.credentials.Check(req.Username, req.Password); err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.issuer.IssueToken(req.Username)
	if err != nil {
		h.logger.Error("failed to issue session token", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}
