package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/config"
	"folio/internal/httputil"
	"folio/internal/service"
)

// ResumeHandler handles the resume slot: one live PDF at a time
type ResumeHandler struct {
	content *service.PortfolioService
	uploads *service.UploadService
	logger  *slog.Logger
}

// NewResumeHandler creates a new resume handler
func NewResumeHandler(content *service.PortfolioService, uploads *service.UploadService, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{
		content: content,
		uploads: uploads,
		logger:  logger,
	}
}

// GetResume returns the current resume reference, or null
// GET /api/resume
func (h *ResumeHandler) GetResume(w http.ResponseWriter, r *http.Request) {
	ref, err := h.content.Resume(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"resume": ref})
}

// UploadResume replaces the current resume
// POST /api/resume (admin, multipart PDF)
func (h *ResumeHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	req, err := parseMultipartUpload(w, r, config.MaxResumeUploadBytes)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := h.uploads.UploadResume(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"url":      asset.Path,
		"filename": asset.Filename,
	})
}

// DeleteResume clears the resume slot
// DELETE /api/resume (admin)
func (h *ResumeHandler) DeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := h.uploads.DeleteResume(r.Context()); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
