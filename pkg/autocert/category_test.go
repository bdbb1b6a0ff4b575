package autocert

import (
	"errors"
	"testing"
)

func TestCategoryDisplayName(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"participation", "Participation"},
		{"merit", "Merit"},
		{"excellence", "Excellence"},
		{"outstanding", "Outstanding Performance"},
		{"leadership", "Leadership"},
		{"best speaker", "Best speaker"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := CategoryDisplayName(tt.id); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestLookupCategoryFallback(t *testing.T) {
	c := LookupCategory("leadership")
	participation := LookupCategory(CategoryParticipation)

	if c.Title != "CERTIFICATE OF LEADERSHIP" {
		t.Errorf("unexpected title %q", c.Title)
	}
	if c.Subtitle != participation.Subtitle || c.Body != participation.Body {
		t.Errorf("expected participation copy, got %q / %q", c.Subtitle, c.Body)
	}
	if !c.Custom {
		t.Error("expected custom category")
	}
}

func TestCategoryRegistryAdd(t *testing.T) {
	r := NewCategoryRegistry()

	c, err := r.Add("  Leadership ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "leadership" || c.Label != "Leadership" {
		t.Errorf("unexpected category %+v", c)
	}
	if !r.Has("LEADERSHIP") {
		t.Error("expected added category to be selectable")
	}
	if got := r.DisplayName("leadership"); got != "Leadership" {
		t.Errorf("unexpected display name %q", got)
	}

	tests := []struct {
		name string
		in   string
	}{
		{name: "duplicate custom", in: "leadership"},
		{name: "duplicate base different case", in: "Merit"},
		{name: "empty", in: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Add(tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	if _, err := r.Add("merit"); !errors.Is(err, ErrCategoryExists) {
		t.Errorf("expected ErrCategoryExists, got %v", err)
	}
	if n := len(r.List()); n != 5 {
		t.Errorf("expected 5 categories, got %d", n)
	}

	r.Reset()
	if r.Has("leadership") || len(r.List()) != 4 {
		t.Error("expected reset to drop custom categories")
	}
}
