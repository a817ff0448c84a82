package models

import "encoding/json"

// PortfolioDocument is the single logical document holding every structured
// section of the site. Exactly one instance exists in storage, keyed by a
// fixed discriminator. Each top-level field is independently replaceable:
// writing one section must never perturb its siblings.
type PortfolioDocument struct {
	Skills                    map[string][]Skill         `json:"skills"`
	CategoryMeta              map[string]json.RawMessage `json:"categoryMeta"`
	Projects                  []Project                  `json:"projects"`
	Experience                []Experience               `json:"experience"`
	About                     About                      `json:"about"`
	Education                 []Education                `json:"education"`
	Certifications            []Certification            `json:"certifications"`
	ResearchPapers            []ResearchPaper            `json:"researchPapers"`
	ExtraCurricularActivities []Activity                 `json:"extraCurricularActivities"`
	Blogs                     []BlogPost                 `json:"blogs"`
	Resume                    *string                    `json:"resume"`
}

// DefaultDocument returns the empty-but-complete document served before any
// section has been written. Every section is present with a neutral value so
// first reads never fail on missing fields.
func DefaultDocument() *PortfolioDocument {
	return &PortfolioDocument{
		Skills:                    map[string][]Skill{},
		CategoryMeta:              map[string]json.RawMessage{},
		Projects:                  []Project{},
		Experience:                []Experience{},
		About:                     About{},
		Education:                 []Education{},
		Certifications:            []Certification{},
		ResearchPapers:            []ResearchPaper{},
		ExtraCurricularActivities: []Activity{},
		Blogs:                     []BlogPost{},
		Resume:                    nil,
	}
}

// Skill is one entry in a skill category.
type Skill struct {
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	IconType string `json:"iconType,omitempty"`
}

// About is a single free-text content block, paragraph-delimited.
type About struct {
	Content string `json:"content"`
}

// Project is a portfolio project entry. IDs are caller-assigned (time-based)
// and list order is caller-controlled; new entries are typically prepended.
type Project struct {
	ID                  int64    `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailedDescription,omitempty"`
	Technologies        []string `json:"technologies,omitempty"`
	GithubURL           string   `json:"githubUrl,omitempty"`
	DemoURL             string   `json:"demoUrl,omitempty"`
	PaperURL            string   `json:"paperUrl,omitempty"`
	Logo                string   `json:"logo,omitempty"`
}

// Experience is one work history entry, newest-first by convention.
type Experience struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Period           string   `json:"period"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Logo             string   `json:"logo,omitempty"`
}

type Education struct {
	ID          int64  `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	Logo        string `json:"logo,omitempty"`
}

type Certification struct {
	ID              int64  `json:"id"`
	CertificateName string `json:"certificateName"`
	Provider        string `json:"provider"`
	CertificateLink string `json:"certificateLink,omitempty"`
	Logo            string `json:"logo,omitempty"`
}

type ResearchPaper struct {
	ID        int64  `json:"id"`
	PaperName string `json:"paperName"`
	Publisher string `json:"publisher"`
	Year      string `json:"year"`
	Link      string `json:"link,omitempty"`
	Logo      string `json:"logo,omitempty"`
}

// Activity is one extra-curricular entry.
type Activity struct {
	ID        int64  `json:"id"`
	Community string `json:"community"`
	Task      string `json:"task"`
	Year      string `json:"year"`
	Logo      string `json:"logo,omitempty"`
}

// Block content types for blog posts.
const (
	BlockTypeText  = "text"
	BlockTypeImage = "image"
)

// Block is one ordered fragment of a blog post body: either a sanitized
// rich-text fragment or an asset reference. Rendering reproduces block order
// exactly.
type Block struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type BlogPost struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Excerpt     string  `json:"excerpt,omitempty"`
	Image       *string `json:"image"`
	PublishedAt string  `json:"publishedAt"`
	Blocks      []Block `json:"blocks"`
}
