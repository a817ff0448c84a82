package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	gocache "github.com/patrickmn/go-cache"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// Section keys form the closed allow-list of independently replaceable
// top-level fields of the portfolio document.
const (
	SectionSkills          = "skills"
	SectionCategoryMeta    = "categoryMeta"
	SectionProjects        = "projects"
	SectionExperience      = "experience"
	SectionAbout           = "about"
	SectionEducation       = "education"
	SectionCertifications  = "certifications"
	SectionResearchPapers  = "researchPapers"
	SectionExtraCurricular = "extraCurricularActivities"
	SectionBlogs           = "blogs"
	SectionResume          = "resume"
)

const (
	portfolioCacheKey = "portfolio"
	portfolioCacheTTL = 5 * time.Minute
)

// PortfolioService is the content repository: it owns the "one document,
// many sections" merge discipline. Callers never hold the document itself,
// only this service's methods.
type PortfolioService struct {
	repo      repositories.PortfolioRepository
	txManager repositories.TransactionManager
	cache     *gocache.Cache
	sanitizer *bluemonday.Policy
	logger    *slog.Logger

	// cacheMu guards cacheGen and cache fills. cacheGen advances on every
	// committed write; a read that fetched the document before a write
	// commit must not repopulate the cache with that snapshot afterwards.
	cacheMu  sync.Mutex
	cacheGen uint64
}

// NewPortfolioService creates a new portfolio content service.
func NewPortfolioService(
	repo repositories.PortfolioRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *PortfolioService {
	return &PortfolioService{
		repo:      repo,
		txManager: txManager,
		cache:     gocache.New(portfolioCacheTTL, 10*time.Minute),
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// Read returns the current document, serving repeated reads from the
// in-process cache. Writes replace the cached document with the committed
// one, so a read issued after a completed write always sees it.
func (s *PortfolioService) Read(ctx context.Context) (*models.PortfolioDocument, error) {
	if cached, found := s.cache.Get(portfolioCacheKey); found {
		if doc, ok := cached.(*models.PortfolioDocument); ok {
			return doc, nil
		}
	}

	s.cacheMu.Lock()
	gen := s.cacheGen
	s.cacheMu.Unlock()

	doc, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	if s.cacheGen == gen {
		s.cache.Set(portfolioCacheKey, doc, gocache.DefaultExpiration)
	}
	s.cacheMu.Unlock()

	return doc, nil
}

// Resume returns the current resume reference, or nil if none is set.
func (s *PortfolioService) Resume(ctx context.Context) (*string, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Resume, nil
}

// WriteSection replaces exactly one section of the document and returns the
// full updated document. The read-modify-write runs inside a transaction
// holding a row lock, so sibling sections written concurrently are never
// lost. An unknown key fails with domain.ErrInvalidSection before storage is
// touched; a payload that does not decode into the section's shape fails
// with domain.ErrValidation.
//
// categoryMeta may accompany a skills write (and only a skills write); both
// fields are applied in the same transaction.
func (s *PortfolioService) WriteSection(ctx context.Context, key string, payload json.RawMessage, categoryMeta json.RawMessage) (*models.PortfolioDocument, error) {
	apply, err := s.decodeSection(key, payload)
	if err != nil {
		return nil, err
	}

	var applyMeta func(*models.PortfolioDocument)
	if len(categoryMeta) > 0 {
		if key != SectionSkills {
			return nil, fmt.Errorf("categoryMeta only accompanies a skills update: %w", domain.ErrValidation)
		}
		meta, err := decodeTyped[map[string]json.RawMessage](SectionCategoryMeta, categoryMeta)
		if err != nil {
			return nil, err
		}
		applyMeta = func(doc *models.PortfolioDocument) { doc.CategoryMeta = meta }
	}

	var updated *models.PortfolioDocument
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.repo.GetForUpdate(txCtx)
		if err != nil {
			return err
		}

		apply(doc)
		if applyMeta != nil {
			applyMeta(doc)
		}

		if err := s.repo.Put(txCtx, doc); err != nil {
			return err
		}

		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	s.cacheGen++
	s.cache.Set(portfolioCacheKey, updated, gocache.DefaultExpiration)
	s.cacheMu.Unlock()

	s.logger.Info("section updated", "section", key)

	return updated, nil
}

// decodeSection decodes payload into the typed shape of the named section
// and returns the mutation to apply. The closed set of shapes here is what
// hardens the otherwise loose section payloads: a list section cannot be
// replaced with a scalar, block types are checked, and blog text fragments
// are sanitized.
func (s *PortfolioService) decodeSection(key string, payload json.RawMessage) (func(*models.PortfolioDocument), error) {
	switch key {
	case SectionSkills:
		v, err := decodeTyped[map[string][]models.Skill](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.Skills = v }, nil

	case SectionCategoryMeta:
		v, err := decodeTyped[map[string]json.RawMessage](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.CategoryMeta = v }, nil

	case SectionProjects:
		v, err := decodeTyped[[]models.Project](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.Projects = v }, nil

	case SectionExperience:
		v, err := decodeTyped[[]models.Experience](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.Experience = v }, nil

	case SectionAbout:
		v, err := decodeTyped[models.About](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.About = v }, nil

	case SectionEducation:
		v, err := decodeTyped[[]models.Education](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.Education = v }, nil

	case SectionCertifications:
		v, err := decodeTyped[[]models.Certification](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.Certifications = v }, nil

	case SectionResearchPapers:
		v, err := decodeTyped[[]models.ResearchPaper](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.ResearchPapers = v }, nil

	case SectionExtraCurricular:
		v, err := decodeTyped[[]models.Activity](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.ExtraCurricularActivities = v }, nil

	case SectionBlogs:
		v, err := decodeTyped[[]models.BlogPost](key, payload)
		if err != nil {
			return nil, err
		}
		if err := s.sanitizeBlogs(v); err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.Blogs = v }, nil

	case SectionResume:
		v, err := decodeTyped[*string](key, payload)
		if err != nil {
			return nil, err
		}
		return func(doc *models.PortfolioDocument) { doc.Resume = v }, nil

	default:
		return nil, fmt.Errorf("unknown section %q: %w", key, domain.ErrInvalidSection)
	}
}

// sanitizeBlogs strips dangerous HTML from every text block and rejects
// blocks with an unknown type tag.
func (s *PortfolioService) sanitizeBlogs(blogs []models.BlogPost) error {
	for i := range blogs {
		for j := range blogs[i].Blocks {
			block := &blogs[i].Blocks[j]
			switch block.Type {
			case models.BlockTypeText:
				block.Content = s.sanitizer.Sanitize(block.Content)
			case models.BlockTypeImage:
			default:
				return fmt.Errorf("blog %q has block of unknown type %q: %w", blogs[i].Title, block.Type, domain.ErrValidation)
			}
		}
	}
	return nil
}

func decodeTyped[T any](key string, payload json.RawMessage) (T, error) {
	var v T
	if len(payload) == 0 {
		return v, fmt.Errorf("section %q payload is empty: %w", key, domain.ErrValidation)
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, fmt.Errorf("section %q payload does not match its shape: %v: %w", key, err, domain.ErrValidation)
	}
	return v, nil
}
