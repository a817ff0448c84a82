package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"folio/internal/httputil"
	"folio/internal/service"
)

// PortfolioHandler handles portfolio document HTTP requests
type PortfolioHandler struct {
	content *service.PortfolioService
	logger  *slog.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(content *service.PortfolioService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		content: content,
		logger:  logger,
	}
}

// HealthCheck reports liveness
// GET /health
func (h *PortfolioHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetPortfolio returns the full document for the public read surface
// GET /api/portfolio
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	doc, err := h.content.Read(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateSectionRequest replaces one allow-listed section wholesale.
// categoryMeta may accompany a skills update.
type UpdateSectionRequest struct {
	Section      string          `json:"section"`
	Payload      json.RawMessage `json:"payload"`
	CategoryMeta json.RawMessage `json:"categoryMeta,omitempty"`
}

// UpdateSection replaces one section of the document
// POST /api/portfolio (admin)
func (h *PortfolioHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var req UpdateSectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.content.WriteSection(r.Context(), req.Section, req.Payload, req.CategoryMeta)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    doc,
	})
}
