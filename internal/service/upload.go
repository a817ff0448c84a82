package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"folio/internal/config"
	"folio/internal/domain"
	"folio/internal/media"
	"folio/internal/storage"
)

// CategoryResume is the upload category with replace-and-delete-old
// semantics: at most one live resume exists.
const CategoryResume = "resume"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadRequest carries one incoming file and its declared metadata.
type UploadRequest struct {
	Filename string
	MIMEType string
	Size     int64
	Data     []byte
	Category string
}

// Asset is a stored object's stable public reference.
type Asset struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

// UploadService is the upload gateway: it validates declared type and size
// against the category's rules before any store contact, then stores the
// object under a collision-resistant name.
type UploadService struct {
	registry *media.Registry
	store    storage.ObjectStore
	content  *PortfolioService
	logger   *slog.Logger
}

// NewUploadService creates a new upload gateway.
func NewUploadService(
	registry *media.Registry,
	store storage.ObjectStore,
	content *PortfolioService,
	logger *slog.Logger,
) *UploadService {
	return &UploadService{
		registry: registry,
		store:    store,
		content:  content,
		logger:   logger,
	}
}

// Upload validates and stores one file, returning its asset reference.
// Validation order: category, declared MIME type, size ceiling. On any
// violation the store is never contacted.
func (s *UploadService) Upload(ctx context.Context, req *UploadRequest) (*Asset, error) {
	rules, err := s.registry.Rules(req.Category)
	if err != nil {
		return nil, err
	}

	if !rules.Allows(req.MIMEType) {
		return nil, &domain.UnsupportedMediaError{
			Message: fmt.Sprintf("type %q not allowed for category %q", req.MIMEType, req.Category),
		}
	}

	size := req.Size
	if int64(len(req.Data)) > size {
		size = int64(len(req.Data))
	}
	if size > rules.MaxBytes {
		return nil, &domain.PayloadTooLargeError{
			Message: fmt.Sprintf("file of %d bytes exceeds the %d byte limit for category %q", size, rules.MaxBytes, req.Category),
		}
	}

	filename := buildAssetName(req.Filename, req.MIMEType)
	key := rules.PathPrefix + "/" + filename

	path, err := s.store.Save(ctx, key, req.Data)
	if err != nil {
		return nil, fmt.Errorf("store asset: %v: %w", err, domain.ErrPersistence)
	}

	s.logger.Info("asset uploaded", "category", req.Category, "path", path, "bytes", size)
	return &Asset{Path: path, Filename: filename}, nil
}

// UploadResume stores a new resume PDF and swaps the document's resume
// reference to it. The previous asset is deleted best-effort after the swap:
// a cleanup failure is logged and never fails the upload.
func (s *UploadService) UploadResume(ctx context.Context, req *UploadRequest) (*Asset, error) {
	req.Category = CategoryResume

	current, err := s.content.Read(ctx)
	if err != nil {
		return nil, err
	}
	var oldRef *string
	if current.Resume != nil {
		ref := *current.Resume
		oldRef = &ref
	}

	asset, err := s.Upload(ctx, req)
	if err != nil {
		return nil, err
	}

	refJSON, err := json.Marshal(asset.Path)
	if err != nil {
		return nil, fmt.Errorf("encode resume reference: %v: %w", err, domain.ErrPersistence)
	}
	if _, err := s.content.WriteSection(ctx, SectionResume, refJSON, nil); err != nil {
		// The new asset was stored but never referenced; remove it so it
		// cannot leak.
		s.cleanupAsset(ctx, asset.Path)
		return nil, err
	}

	if oldRef != nil {
		s.cleanupAsset(ctx, *oldRef)
	}

	return asset, nil
}

// DeleteResume clears the resume reference and attempts to delete the
// underlying asset.
func (s *UploadService) DeleteResume(ctx context.Context) error {
	current, err := s.content.Read(ctx)
	if err != nil {
		return err
	}
	if current.Resume == nil {
		return fmt.Errorf("no resume to delete: %w", domain.ErrValidation)
	}
	oldRef := *current.Resume

	if _, err := s.content.WriteSection(ctx, SectionResume, json.RawMessage("null"), nil); err != nil {
		return err
	}

	s.cleanupAsset(ctx, oldRef)
	return nil
}

// cleanupAsset is the best-effort cascading delete. References outside this
// store (external URLs) are left alone; a store failure is logged, never
// propagated.
func (s *UploadService) cleanupAsset(ctx context.Context, ref string) {
	key, ok := s.store.KeyFromPublicPath(ref)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("upstream delete failed", "ref", ref, "error", err)
	}
}

// buildAssetName sanitizes the original file name and appends a time-based
// suffix plus the extension implied by the declared MIME type.
func buildAssetName(original, mimeType string) string {
	base := original
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if len(base) > config.MaxUploadFilenameLength {
		base = base[:config.MaxUploadFilenameLength]
	}
	if base == "" {
		base = "file"
	}

	suffix := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return base + "_" + suffix + "." + media.Extension(mimeType)
}
