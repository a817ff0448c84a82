package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"folio/internal/domain"
	"folio/internal/domain/models"
)

func newTestContentService() (*PortfolioService, *fakePortfolioRepo) {
	repo := &fakePortfolioRepo{}
	return NewPortfolioService(repo, &fakeTxManager{}, testLogger()), repo
}

func TestReadReturnsDefaultDocument(t *testing.T) {
	svc, _ := newTestContentService()

	doc, err := svc.Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if doc.Skills == nil || doc.Projects == nil || doc.Blogs == nil {
		t.Errorf("Read() on empty store returned nil sections: %+v", doc)
	}
	if doc.Resume != nil {
		t.Errorf("Read() on empty store resume = %v, want nil", *doc.Resume)
	}
}

func TestWriteSectionRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		section string
		payload string
		check   func(t *testing.T, doc *models.PortfolioDocument)
	}{
		{
			name:    "projects",
			section: SectionProjects,
			payload: `[{"id": 1700000000000, "title": "Folio", "description": "portfolio backend"}]`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if len(doc.Projects) != 1 || doc.Projects[0].Title != "Folio" {
					t.Errorf("projects = %+v", doc.Projects)
				}
			},
		},
		{
			name:    "experience",
			section: SectionExperience,
			payload: `[{"id": 2, "title": "Engineer", "company": "Acme", "period": "2023 - Present", "responsibilities": ["ship"]}]`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if len(doc.Experience) != 1 || doc.Experience[0].Company != "Acme" {
					t.Errorf("experience = %+v", doc.Experience)
				}
			},
		},
		{
			name:    "skills",
			section: SectionSkills,
			payload: `{"Languages": [{"name": "Go", "icon": "go", "iconType": "simple-icons"}]}`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if len(doc.Skills["Languages"]) != 1 || doc.Skills["Languages"][0].Name != "Go" {
					t.Errorf("skills = %+v", doc.Skills)
				}
			},
		},
		{
			name:    "about",
			section: SectionAbout,
			payload: `{"content": "First paragraph.\n\nSecond paragraph."}`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if !strings.HasPrefix(doc.About.Content, "First") {
					t.Errorf("about = %+v", doc.About)
				}
			},
		},
		{
			name:    "education",
			section: SectionEducation,
			payload: `[{"id": 3, "institution": "MIT", "degree": "BSc", "year": "2020"}]`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if len(doc.Education) != 1 || doc.Education[0].Institution != "MIT" {
					t.Errorf("education = %+v", doc.Education)
				}
			},
		},
		{
			name:    "certifications",
			section: SectionCertifications,
			payload: `[{"id": 4, "certificateName": "CKA", "provider": "CNCF"}]`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if len(doc.Certifications) != 1 || doc.Certifications[0].Provider != "CNCF" {
					t.Errorf("certifications = %+v", doc.Certifications)
				}
			},
		},
		{
			name:    "research papers",
			section: SectionResearchPapers,
			payload: `[{"id": 5, "paperName": "On Portfolios", "publisher": "ACM", "year": "2024"}]`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if len(doc.ResearchPapers) != 1 || doc.ResearchPapers[0].Publisher != "ACM" {
					t.Errorf("researchPapers = %+v", doc.ResearchPapers)
				}
			},
		},
		{
			name:    "extra curricular",
			section: SectionExtraCurricular,
			payload: `[{"id": 6, "community": "GDG", "task": "Organizer", "year": "2023"}]`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if len(doc.ExtraCurricularActivities) != 1 || doc.ExtraCurricularActivities[0].Community != "GDG" {
					t.Errorf("extraCurricularActivities = %+v", doc.ExtraCurricularActivities)
				}
			},
		},
		{
			name:    "resume reference",
			section: SectionResume,
			payload: `"/uploads/resume/resume_1700000000000.pdf"`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if doc.Resume == nil || *doc.Resume != "/uploads/resume/resume_1700000000000.pdf" {
					t.Errorf("resume = %v", doc.Resume)
				}
			},
		},
		{
			name:    "category meta",
			section: SectionCategoryMeta,
			payload: `{"Languages": {"order": 1}}`,
			check: func(t *testing.T, doc *models.PortfolioDocument) {
				if _, ok := doc.CategoryMeta["Languages"]; !ok {
					t.Errorf("categoryMeta = %+v", doc.CategoryMeta)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestContentService()

			updated, err := svc.WriteSection(context.Background(), tt.section, json.RawMessage(tt.payload), nil)
			if err != nil {
				t.Fatalf("WriteSection(%q) error = %v", tt.section, err)
			}
			tt.check(t, updated)

			// A fresh read must observe the same state
			read, err := svc.Read(context.Background())
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			tt.check(t, read)
		})
	}
}

func TestWriteSectionPreservesSiblings(t *testing.T) {
	svc, _ := newTestContentService()
	ctx := context.Background()

	if _, err := svc.WriteSection(ctx, SectionProjects, json.RawMessage(`[{"id": 1, "title": "A", "description": "d"}]`), nil); err != nil {
		t.Fatalf("write projects: %v", err)
	}
	if _, err := svc.WriteSection(ctx, SectionAbout, json.RawMessage(`{"content": "hello"}`), nil); err != nil {
		t.Fatalf("write about: %v", err)
	}

	doc, err := svc.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(doc.Projects) != 1 || doc.Projects[0].Title != "A" {
		t.Errorf("projects perturbed by about write: %+v", doc.Projects)
	}
	if doc.About.Content != "hello" {
		t.Errorf("about = %q, want %q", doc.About.Content, "hello")
	}
}

func TestWriteSectionUnknownKey(t *testing.T) {
	svc, repo := newTestContentService()

	before, _ := svc.Read(context.Background())

	_, err := svc.WriteSection(context.Background(), "not-a-real-section", json.RawMessage(`{}`), nil)
	if !errors.Is(err, domain.ErrInvalidSection) {
		t.Fatalf("WriteSection(unknown) error = %v, want ErrInvalidSection", err)
	}

	if repo.puts != 0 {
		t.Errorf("storage written %d times on invalid section, want 0", repo.puts)
	}

	after, _ := svc.Read(context.Background())
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)
	if string(beforeJSON) != string(afterJSON) {
		t.Errorf("document changed after rejected write:\nbefore %s\nafter  %s", beforeJSON, afterJSON)
	}
}

func TestWriteSectionShapeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		section string
		payload string
	}{
		{"scalar for list section", SectionProjects, `"nope"`},
		{"list for about", SectionAbout, `[1, 2, 3]`},
		{"number for resume", SectionResume, `42`},
		{"empty payload", SectionSkills, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestContentService()

			_, err := svc.WriteSection(context.Background(), tt.section, json.RawMessage(tt.payload), nil)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("WriteSection(%q, %q) error = %v, want ErrValidation", tt.section, tt.payload, err)
			}
			if repo.puts != 0 {
				t.Errorf("storage written on malformed payload")
			}
		})
	}
}

func TestWriteSectionSanitizesBlogText(t *testing.T) {
	svc, _ := newTestContentService()

	payload := `[{
		"id": 1,
		"title": "Post",
		"slug": "post",
		"publishedAt": "2024-01-01T00:00:00Z",
		"blocks": [
			{"type": "text", "content": "<p>safe</p><script>alert(1)</script>"},
			{"type": "image", "content": "/uploads/blog/pic_1.png"}
		]
	}]`

	doc, err := svc.WriteSection(context.Background(), SectionBlogs, json.RawMessage(payload), nil)
	if err != nil {
		t.Fatalf("WriteSection(blogs) error = %v", err)
	}

	blocks := doc.Blogs[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2 (order preserved)", len(blocks))
	}
	if strings.Contains(blocks[0].Content, "<script>") {
		t.Errorf("text block not sanitized: %q", blocks[0].Content)
	}
	if !strings.Contains(blocks[0].Content, "safe") {
		t.Errorf("safe content stripped: %q", blocks[0].Content)
	}
	if blocks[1].Content != "/uploads/blog/pic_1.png" {
		t.Errorf("image block altered: %q", blocks[1].Content)
	}
}

func TestWriteSectionRejectsUnknownBlockType(t *testing.T) {
	svc, repo := newTestContentService()

	payload := `[{"id": 1, "title": "Post", "slug": "post", "publishedAt": "x", "blocks": [{"type": "video", "content": "u"}]}]`
	_, err := svc.WriteSection(context.Background(), SectionBlogs, json.RawMessage(payload), nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("WriteSection(blogs with video block) error = %v, want ErrValidation", err)
	}
	if repo.puts != 0 {
		t.Errorf("storage written on invalid block type")
	}
}

func TestWriteSkillsWithCategoryMeta(t *testing.T) {
	svc, _ := newTestContentService()

	doc, err := svc.WriteSection(context.Background(),
		SectionSkills,
		json.RawMessage(`{"Tools": [{"name": "Docker"}]}`),
		json.RawMessage(`{"Tools": {"order": 2}}`),
	)
	if err != nil {
		t.Fatalf("WriteSection(skills+meta) error = %v", err)
	}
	if len(doc.Skills["Tools"]) != 1 {
		t.Errorf("skills = %+v", doc.Skills)
	}
	if _, ok := doc.CategoryMeta["Tools"]; !ok {
		t.Errorf("categoryMeta not applied: %+v", doc.CategoryMeta)
	}
}

func TestCategoryMetaRejectedOutsideSkills(t *testing.T) {
	svc, _ := newTestContentService()

	_, err := svc.WriteSection(context.Background(),
		SectionProjects,
		json.RawMessage(`[]`),
		json.RawMessage(`{"Tools": {}}`),
	)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("WriteSection(projects with categoryMeta) error = %v, want ErrValidation", err)
	}
}

func TestInterleavedWritesToDifferentSections(t *testing.T) {
	svc, _ := newTestContentService()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.WriteSection(ctx, SectionProjects, json.RawMessage(`[{"id": 1, "title": "P", "description": "d"}]`), nil)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.WriteSection(ctx, SectionExperience, json.RawMessage(`[{"id": 2, "title": "E", "company": "C", "period": "p"}]`), nil)
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent write %d failed: %v", i, err)
		}
	}

	doc, err := svc.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(doc.Projects) != 1 || doc.Projects[0].Title != "P" {
		t.Errorf("projects lost: %+v", doc.Projects)
	}
	if len(doc.Experience) != 1 || doc.Experience[0].Title != "E" {
		t.Errorf("experience lost: %+v", doc.Experience)
	}
}

// gatedPortfolioRepo pauses the first Get after its snapshot is taken, so a
// write can commit in the window between a reader's fetch and its cache fill.
type gatedPortfolioRepo struct {
	*fakePortfolioRepo
	entered  chan struct{}
	release  chan struct{}
	gateOnce sync.Once
}

func (g *gatedPortfolioRepo) Get(ctx context.Context) (*models.PortfolioDocument, error) {
	doc, err := g.fakePortfolioRepo.Get(ctx)
	g.gateOnce.Do(func() {
		close(g.entered)
		<-g.release
	})
	return doc, err
}

func TestReadCannotResurrectPreWriteSnapshot(t *testing.T) {
	repo := &gatedPortfolioRepo{
		fakePortfolioRepo: &fakePortfolioRepo{},
		entered:           make(chan struct{}),
		release:           make(chan struct{}),
	}
	svc := NewPortfolioService(repo, &fakeTxManager{}, testLogger())
	ctx := context.Background()

	// A reader snapshots the document, then stalls before filling the cache
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := svc.Read(ctx); err != nil {
			t.Errorf("stalled Read() error = %v", err)
		}
	}()
	<-repo.entered

	// A write commits while the reader is stalled
	if _, err := svc.WriteSection(ctx, SectionAbout, json.RawMessage(`{"content":"new"}`), nil); err != nil {
		t.Fatalf("WriteSection() error = %v", err)
	}

	close(repo.release)
	<-done

	// The stalled reader's pre-write snapshot must not have repopulated the
	// cache over the committed document
	doc, err := svc.Read(ctx)
	if err != nil {
		t.Fatalf("Read() after write error = %v", err)
	}
	if doc.About.Content != "new" {
		t.Errorf("read after committed write = %q, want %q", doc.About.Content, "new")
	}
}

func TestWriteSectionPersistenceFailure(t *testing.T) {
	repo := &fakePortfolioRepo{fail: true}
	svc := NewPortfolioService(repo, &fakeTxManager{}, testLogger())

	_, err := svc.WriteSection(context.Background(), SectionProjects, json.RawMessage(`[]`), nil)
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("WriteSection with failing store error = %v, want ErrPersistence", err)
	}
}
