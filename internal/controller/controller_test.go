package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/SeakMengs/certgen/pkg/autocert"
	"github.com/SeakMengs/certgen/pkg/designer"
)

func TestStudentsFromCSV(t *testing.T) {
	csv := "Name,Roll Number,Email,Category\n" +
		"John Doe,2021001,john@student.edu,Merit\n" +
		",2021002,nobody@student.edu,\n" +
		"Jane Smith,2021003,,\n" +
		strings.Repeat("x", 256) + ",2021004,,\n"

	students, rowErrors, err := studentsFromCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
	if students[0].Name != "John Doe" || students[0].RollNumber != "2021001" || students[0].Category != "merit" {
		t.Errorf("unexpected first student %+v", students[0])
	}
	if students[1].Name != "Jane Smith" || students[1].Email != "" {
		t.Errorf("unexpected second student %+v", students[1])
	}

	if len(rowErrors) != 1 || !strings.Contains(rowErrors[0], "row 5") {
		t.Errorf("unexpected row errors %v", rowErrors)
	}
}

func TestStudentsFromCSVHeaderAliases(t *testing.T) {
	csv := "name,roll_number,phone,course,year,section\nMike,42,+1234,Mechanical,1st Year,C"

	students, _, err := studentsFromCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(students))
	}

	s := students[0]
	if s.RollNumber != "42" || s.Phone != "+1234" || s.Course != "Mechanical" || s.Year != "1st Year" || s.Section != "C" {
		t.Errorf("unexpected student %+v", s)
	}
}

func TestNormalizeParticipants(t *testing.T) {
	in := []autocert.Participant{
		{DisplayName: "John Doe", Category: "merit", Fields: map[string]string{"event": "Gala"}},
	}

	out, err := normalizeParticipants(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].DisplayName != "John Doe" || out[0].Category != "merit" || out[0].Event() != "Gala" {
		t.Errorf("unexpected participant %+v", out[0])
	}

	if _, err := normalizeParticipants([]autocert.Participant{{Fields: map[string]string{"event": "Gala"}}}); err == nil {
		t.Error("expected an error for a participant without a name")
	}
}

func TestPrepareStore(t *testing.T) {
	participants, err := autocert.ParseParticipants("name\nJohn Doe")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		template string
		wantErr  bool
	}{
		{name: "known template", template: "colorful"},
		{name: "missing template", template: "", wantErr: true},
		{name: "unknown template", template: "gothic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := prepareStore(participants, tt.template)
			if tt.wantErr {
				if !errors.Is(err, autocert.ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tpl, _ := store.Template(); tpl != autocert.TemplateColorful {
				t.Errorf("expected colorful, got %s", tpl)
			}
		})
	}
}

func TestTemplateRequestToModel(t *testing.T) {
	t.Run("default canvas", func(t *testing.T) {
		m, err := templateRequest{Name: "  Award  "}.toModel()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Name != "Award" {
			t.Errorf("expected trimmed name, got %q", m.Name)
		}

		var canvas designer.Canvas
		if err := json.Unmarshal(m.Canvas, &canvas); err != nil {
			t.Fatal(err)
		}
		if canvas != designer.DefaultCanvas {
			t.Errorf("expected default canvas, got %+v", canvas)
		}
		if string(m.Elements) != "[]" {
			t.Errorf("expected empty elements, got %s", m.Elements)
		}
	})

	t.Run("invalid elements", func(t *testing.T) {
		req := templateRequest{
			Name: "Award",
			Elements: []designer.Element{
				{ID: "a", Type: designer.ElementText, Width: 100, Height: 40},
				{ID: "a", Type: designer.ElementText, Width: 100, Height: 40},
			},
		}
		if _, err := req.toModel(); !errors.Is(err, designer.ErrInvalidDocument) {
			t.Errorf("expected invalid document, got %v", err)
		}
	})

	t.Run("unknown frame", func(t *testing.T) {
		if _, err := (templateRequest{Name: "Award", Frame: "nope"}).toModel(); err == nil {
			t.Error("expected an error for an unknown frame")
		}
	})
}
