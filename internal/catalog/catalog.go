// internal/catalog/catalog.go
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mcp-meal-plan/internal/models"
)

var ErrInvalidTemplate = errors.New("invalid meal template")

// Catalog is an immutable, ordered set of meal templates. Order is the order
// templates were supplied in and is what ties are broken by when matching.
// All accessors return copies, so a Catalog is safe for concurrent use.
type Catalog struct {
	templates []models.MealTemplate
	byID      map[string]int
}

func New(templates []models.MealTemplate) (*Catalog, error) {
	c := &Catalog{
		templates: make([]models.MealTemplate, 0, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	for i, t := range templates {
		if strings.TrimSpace(t.ID) == "" {
			return nil, fmt.Errorf("%w: template %d has no id", ErrInvalidTemplate, i)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidTemplate, t.ID)
		}
		if !t.MealType.Valid() {
			return nil, fmt.Errorf("%w: %s: unknown meal type %q", ErrInvalidTemplate, t.ID, t.MealType)
		}
		if t.TargetKcal <= 0 {
			return nil, fmt.Errorf("%w: %s: target kcal must be positive", ErrInvalidTemplate, t.ID)
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t.Clone())
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

func (c *Catalog) Templates() []models.MealTemplate {
	out := make([]models.MealTemplate, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.Clone()
	}
	return out
}

// ByMealType returns the templates of one meal type in catalog order.
func (c *Catalog) ByMealType(mt models.MealType) []models.MealTemplate {
	var out []models.MealTemplate
	for _, t := range c.templates {
		if t.MealType == mt {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (c *Catalog) Get(id string) (models.MealTemplate, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.MealTemplate{}, false
	}
	return c.templates[i].Clone(), true
}

type catalogFile struct {
	Templates []models.MealTemplate `yaml:"templates"`
}

// Parse reads a YAML document with a top-level "templates" list.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("%w: catalog file has no templates", ErrInvalidTemplate)
	}
	return New(f.Templates)
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}
