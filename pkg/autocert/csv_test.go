package autocert

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseCSVToMap(t *testing.T) {
	tests := []struct {
		name     string
		records  [][]string
		expected []map[string]string
	}{
		{
			name: "Basic CSV",
			records: [][]string{
				{"header1", "header2"},
				{"value1", "value2"},
				{"value3", "value4"},
			},
			expected: []map[string]string{
				{"header1": "value1", "header2": "value2"},
				{"header1": "value3", "header2": "value4"},
			},
		},
		{
			name:     "Empty CSV",
			records:  [][]string{},
			expected: []map[string]string{},
		},
		{
			name: "Missing Values",
			records: [][]string{
				{"header1", "header2"},
				{"value1"},
				{"value3", "value4"},
			},
			expected: []map[string]string{
				{"header1": "value1", "header2": ""},
				{"header1": "value3", "header2": "value4"},
			},
		},
		{
			name: "Extra Values",
			records: [][]string{
				{"header1", "header2"},
				{"value1", "value2", "extra"},
				{"value3", "value4"},
			},
			expected: []map[string]string{
				{"header1": "value1", "header2": "value2"},
				{"header1": "value3", "header2": "value4"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseCSVToMap(tt.records)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestParseParticipants(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Participant
	}{
		{
			name: "name and event",
			text: "name,event\nJohn Doe,Spring Gala\nJane Roe,Spring Gala",
			expected: []Participant{
				{
					DisplayName: "John Doe",
					Category:    "participation",
					Fields:      map[string]string{"name": "John Doe", "event": "Spring Gala"},
					Columns:     []string{"name", "event"},
				},
				{
					DisplayName: "Jane Roe",
					Category:    "participation",
					Fields:      map[string]string{"name": "Jane Roe", "event": "Spring Gala"},
					Columns:     []string{"name", "event"},
				},
			},
		},
		{
			name: "quoted uppercase headers and category",
			text: "\"Participant Name\",\"Category\"\r\n\"Ann Lee\",\"Merit\"\r\n",
			expected: []Participant{
				{
					DisplayName: "Ann Lee",
					Category:    "merit",
					Fields:      map[string]string{"participant name": "Ann Lee", "category": "Merit"},
					Columns:     []string{"participant name", "category"},
				},
			},
		},
		{
			name: "short and nameless rows are dropped",
			text: "name,email,participant\nOnly One\n,a@b.c,\n,x@y.z,Bob",
			expected: []Participant{
				{
					DisplayName: "Bob",
					Category:    "participation",
					Fields:      map[string]string{"name": "", "email": "x@y.z", "participant": "Bob"},
					Columns:     []string{"name", "email", "participant"},
				},
			},
		},
		{
			name: "extra fields are ignored",
			text: "name\nJohn,extra",
			expected: []Participant{
				{
					DisplayName: "John",
					Category:    "participation",
					Fields:      map[string]string{"name": "John"},
					Columns:     []string{"name"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseParticipants(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, result)
			}
		})
	}
}

func TestParseParticipantsFormatError(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "header only", text: "name,event\n"},
		{name: "no name column", text: "email,event\na@b.c,Gala"},
		{name: "all names empty", text: "name,event\n,Gala\n ,Gala"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParticipants(tt.text)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestParseParticipantsReader(t *testing.T) {
	participants, err := ParseParticipantsReader(strings.NewReader(ParticipantTemplateCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(participants) != 4 {
		t.Fatalf("expected 4 participants, got %d", len(participants))
	}

	categories := []string{"participation", "merit", "excellence", "outstanding"}
	for i, p := range participants {
		if p.Category != categories[i] {
			t.Errorf("participant %d: expected category %s, got %s", i, categories[i], p.Category)
		}
		if p.Event() != "Annual Conference 2024" || p.Date() != "2024-08-14" {
			t.Errorf("participant %d: unexpected event/date %q %q", i, p.Event(), p.Date())
		}
	}
	if got := participants[1].ExtraInfo(); !reflect.DeepEqual(got, []string{"email: jane@email.com", "position: Speaker"}) {
		t.Errorf("unexpected extra info %v", got)
	}
}

func TestReadCSVFromReaderQuotedFields(t *testing.T) {
	records, err := ReadCSVFromReader(strings.NewReader("name,course\n\"Doe, John\",CS\nJane"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := [][]string{{"name", "course"}, {"Doe, John", "CS"}, {"Jane"}}
	if !reflect.DeepEqual(records, expected) {
		t.Errorf("expected %v, got %v", expected, records)
	}
}
