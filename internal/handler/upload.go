package handler

import (
	"io"
	"log/slog"
	"net/http"

	"folio/internal/config"
	"folio/internal/httputil"
	"folio/internal/service"
)

// defaultCategory matches the admin forms, which omit the field for logo
// uploads.
const defaultCategory = "company_logo"

// UploadHandler handles multipart asset uploads
type UploadHandler struct {
	uploads *service.UploadService
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploads *service.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		logger:  logger,
	}
}

// Upload stores one asset
// POST /api/upload (admin, multipart: file, category)
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Transport cap sized to the largest category ceiling; the gateway
	// enforces the per-category limit.
	req, err := parseMultipartUpload(w, r, config.MaxResumeUploadBytes)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Category = r.FormValue("category")
	if req.Category == "" {
		// Legacy field name used by the admin forms
		req.Category = r.FormValue("type")
	}
	if req.Category == "" {
		req.Category = defaultCategory
	}

	asset, err := h.uploads.Upload(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"path":     asset.Path,
		"filename": asset.Filename,
	})
}

// parseMultipartUpload extracts the uploaded file from the request. The
// parse cap is a transport guard only; the category's real ceiling is
// enforced by the upload gateway.
func parseMultipartUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*service.UploadRequest, error) {
	// Headroom for multipart framing and the category field
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &service.UploadRequest{
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Data:     data,
	}, nil
}
