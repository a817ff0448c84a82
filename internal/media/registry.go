package media

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"folio/internal/domain"
)

//go:embed config/*.yaml
var configFiles embed.FS

// CategoryRules describe what an upload category accepts and where its
// assets are published.
type CategoryRules struct {
	Name         string   `yaml:"name"`
	AllowedTypes []string `yaml:"allowed_types"`
	MaxBytes     int64    `yaml:"max_bytes"`
	PathPrefix   string   `yaml:"path_prefix"`
}

// Allows reports whether the declared MIME type is on the category's
// allow-list.
func (c *CategoryRules) Allows(mimeType string) bool {
	for _, t := range c.AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

type categoriesFile struct {
	Categories []CategoryRules `yaml:"categories"`
}

// Registry holds upload category rules loaded from the embedded YAML file.
type Registry struct {
	categories map[string]*CategoryRules
	mu         sync.RWMutex
}

// NewRegistry creates a new category registry and loads the embedded YAML
// configuration.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		categories: make(map[string]*CategoryRules),
	}

	data, err := configFiles.ReadFile("config/categories.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read categories config: %w", err)
	}

	var file categoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories config: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range file.Categories {
		cat := file.Categories[i]
		if cat.Name == "" || cat.MaxBytes <= 0 || len(cat.AllowedTypes) == 0 {
			return nil, fmt.Errorf("invalid category entry %q in categories config", cat.Name)
		}
		r.categories[cat.Name] = &cat
	}

	return r, nil
}

// Rules returns the rules for a category, or domain.ErrValidation for an
// unknown category name.
func (r *Registry) Rules(category string) (*CategoryRules, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules, ok := r.categories[category]
	if !ok {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown upload category %q", category)}
	}
	return rules, nil
}

// Categories returns the known category names.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	return names
}

// Extension maps an allowed MIME type to the file extension used for stored
// assets.
func Extension(mimeType string) string {
	switch mimeType {
	case "image/svg+xml":
		return "svg"
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "application/pdf":
		return "pdf"
	default:
		return "bin"
	}
}
