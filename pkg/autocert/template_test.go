package autocert

import (
	"encoding/json"
	"testing"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		in       string
		expected Template
		ok       bool
	}{
		{"modern", TemplateModern, true},
		{"classic", TemplateClassic, true},
		{" Colorful ", TemplateColorful, true},
		{"simple", TemplateSimple, true},
		{"fancy", TemplateModern, false},
		{"", TemplateModern, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTemplate(tt.in)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestTemplatePalette(t *testing.T) {
	p := LookupTemplate("classic").Palette()
	if p.Primary != (RGB{139, 69, 19}) || p.Accent.Hex() != "#daa520" {
		t.Errorf("unexpected classic palette %+v", p)
	}
	if Template(42).Palette() != TemplateModern.Palette() {
		t.Error("expected out of range template to use the modern palette")
	}
}

func TestTemplateJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Template Template `json:"template"`
	}{TemplateColorful})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"template":"colorful"}` {
		t.Errorf("unexpected json %s", b)
	}

	var v struct {
		Template Template `json:"template"`
	}
	if err := json.Unmarshal([]byte(`{"template":"simple"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Template != TemplateSimple {
		t.Errorf("expected simple, got %v", v.Template)
	}
	if len(Templates()) != 4 {
		t.Errorf("expected 4 templates, got %d", len(Templates()))
	}
}
