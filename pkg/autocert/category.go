package autocert

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category carries the copy printed on a certificate for one award kind.
type Category struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	Custom   bool   `json:"custom"`
}

const (
	CategoryParticipation = "participation"
	CategoryMerit         = "merit"
	CategoryExcellence    = "excellence"
	CategoryOutstanding   = "outstanding"
)

var baseCategories = []Category{
	{
		ID:       CategoryParticipation,
		Label:    "Participation",
		Title:    "CERTIFICATE OF PARTICIPATION",
		Subtitle: "This is to certify that",
		Body:     "has successfully participated in the event",
	},
	{
		ID:       CategoryMerit,
		Label:    "Merit",
		Title:    "CERTIFICATE OF MERIT",
		Subtitle: "This is to certify that",
		Body:     "has demonstrated meritorious performance in",
	},
	{
		ID:       CategoryExcellence,
		Label:    "Excellence",
		Title:    "CERTIFICATE OF EXCELLENCE",
		Subtitle: "This is awarded to recognize that",
		Body:     "has achieved excellence in",
	},
	{
		ID:       CategoryOutstanding,
		Label:    "Outstanding Performance",
		Title:    "CERTIFICATE OF OUTSTANDING PERFORMANCE",
		Subtitle: "This certificate is proudly presented to",
		Body:     "has shown outstanding performance in",
	},
}

// BaseCategories returns the fixed categories every registry starts with.
func BaseCategories() []Category {
	out := make([]Category, len(baseCategories))
	copy(out, baseCategories)
	return out
}

func baseCategory(id string) (Category, bool) {
	for _, c := range baseCategories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// LookupCategory resolves a category id to its copy. Ids outside the base set get a
// generated title and the participation subtitle and body.
func LookupCategory(id string) Category {
	if c, ok := baseCategory(id); ok {
		return c
	}

	participation := baseCategories[0]
	return Category{
		ID:       id,
		Label:    capitalizeFirst(id),
		Title:    "CERTIFICATE OF " + strings.ToUpper(id),
		Subtitle: participation.Subtitle,
		Body:     participation.Body,
		Custom:   true,
	}
}

// CategoryDisplayName is the human label of a category id.
func CategoryDisplayName(id string) string {
	return LookupCategory(id).Label
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// CategoryRegistry is the ordered set of categories a user can assign.
// Custom categories can be appended but never removed.
type CategoryRegistry struct {
	categories []Category
}

func NewCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{categories: BaseCategories()}
}

// Add appends a custom category. The id is trimmed and lowercased; empty ids and
// case-insensitive duplicates are rejected.
func (r *CategoryRegistry) Add(name string) (Category, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	if id == "" {
		return Category{}, fmt.Errorf("%w: please enter a category name", ErrValidation)
	}
	if r.Has(id) {
		return Category{}, fmt.Errorf("%w: %w: %q", ErrValidation, ErrCategoryExists, id)
	}

	c := LookupCategory(id)
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *CategoryRegistry) Has(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

func (r *CategoryRegistry) List() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Reset drops every custom category.
func (r *CategoryRegistry) Reset() {
	r.categories = BaseCategories()
}

// Lookup returns a registered category, matching the id case-insensitively.
func (r *CategoryRegistry) Lookup(id string) (Category, bool) {
	for _, c := range r.categories {
		if strings.EqualFold(c.ID, strings.TrimSpace(id)) {
			return c, true
		}
	}
	return Category{}, false
}

func (r *CategoryRegistry) DisplayName(id string) string {
	if c, ok := r.Lookup(id); ok {
		return c.Label
	}
	return CategoryDisplayName(id)
}
