package autocert

import (
	"fmt"
	"sort"
	"strings"
)

const (
	DefaultCategory    = "participation"
	UnknownParticipant = "Unknown Participant"
)

// Participant is one CSV row plus the derived display name and category.
// Field keys are lowercased header names; Columns keeps the header order.
type Participant struct {
	DisplayName string            `json:"displayName"`
	Category    string            `json:"category"`
	Fields      map[string]string `json:"fields"`
	Columns     []string          `json:"columns"`
}

// NewParticipant builds a participant from already keyed fields. Keys are lowercased.
// It fails with ErrValidation when none of the name columns has a value.
func NewParticipant(fields map[string]string, columns []string) (Participant, error) {
	lowered := make(map[string]string, len(fields))
	for k, v := range fields {
		lowered[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	cols := make([]string, 0, len(lowered))
	seen := make(map[string]bool, len(lowered))
	for _, c := range columns {
		c = strings.ToLower(strings.TrimSpace(c))
		if _, ok := lowered[c]; ok && !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	// fields that the caller did not order go last, sorted
	var rest []string
	for k := range lowered {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	cols = append(cols, rest...)

	p, ok := newParticipant(lowered, cols)
	if !ok {
		return Participant{}, fmt.Errorf("%w: participant has no name", ErrValidation)
	}
	return p, nil
}

func newParticipant(fields map[string]string, columns []string) (Participant, bool) {
	displayName := ""
	for _, c := range nameColumns {
		if v := fields[c]; v != "" {
			displayName = v
			break
		}
	}
	if displayName == "" {
		return Participant{}, false
	}

	category := strings.ToLower(strings.TrimSpace(fields["category"]))
	if category == "" {
		category = DefaultCategory
	}

	return Participant{
		DisplayName: displayName,
		Category:    category,
		Fields:      fields,
		Columns:     columns,
	}, true
}

// Get returns the value of a lowercased column, or "" when absent.
func (p Participant) Get(key string) string {
	return p.Fields[strings.ToLower(key)]
}

func (p Participant) firstOf(keys ...string) string {
	for _, k := range keys {
		if v := p.Fields[k]; v != "" {
			return v
		}
	}
	return ""
}

// Event returns the event column value ("event" or "event name").
func (p Participant) Event() string {
	return p.firstOf("event", "event name")
}

// Date returns the date column value ("date" or "event date").
func (p Participant) Date() string {
	return p.firstOf("date", "event date")
}

func (p Participant) Email() string {
	return p.firstOf("email", "e-mail", "email address")
}

// consumedColumns are rendered in dedicated rows and never repeated as extra info.
var consumedColumns = map[string]bool{
	"displayname":      true,
	"name":             true,
	"participant":      true,
	"participant name": true,
	"event":            true,
	"event name":       true,
	"date":             true,
	"event date":       true,
	"category":         true,
}

// ExtraInfo lists "key: value" lines for non-empty columns not shown elsewhere, in column order.
func (p Participant) ExtraInfo() []string {
	var out []string
	for _, c := range p.Columns {
		if consumedColumns[c] {
			continue
		}
		if v := p.Fields[c]; v != "" {
			out = append(out, c+": "+v)
		}
	}
	return out
}

// WithCategory returns a copy of p with its category replaced.
func (p Participant) WithCategory(category string) Participant {
	fields := make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		fields[k] = v
	}
	cols := make([]string, len(p.Columns))
	copy(cols, p.Columns)

	p.Fields = fields
	p.Columns = cols
	p.Category = strings.ToLower(strings.TrimSpace(category))
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	return p
}
