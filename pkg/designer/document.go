package designer

import (
	"fmt"
	"strings"
)

type Canvas struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	BackgroundColor string  `json:"backgroundColor"`
}

// DefaultCanvas is the size of a new untitled document.
var DefaultCanvas = Canvas{Width: 800, Height: 600, BackgroundColor: "#ffffff"}

// Document is everything the designer saves: the canvas, the applied frame and the
// elements in drawing order.
type Document struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Canvas      Canvas    `json:"canvas"`
	Frame       string    `json:"frame,omitempty"`
	Elements    []Element `json:"elements"`
}

func NewDocument(name string) Document {
	return Document{Name: name, Canvas: DefaultCanvas, Elements: []Element{}}
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := d
	out.Elements = make([]Element, len(d.Elements))
	copy(out.Elements, d.Elements)
	return out
}

func (d Document) IsEmpty() bool {
	return len(d.Elements) == 0
}

// Validate checks a document received from outside the designer.
func (d Document) Validate() error {
	if d.Canvas.Width <= 0 || d.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas must have a positive size", ErrInvalidDocument)
	}
	if d.Frame != "" {
		if _, ok := LookupFrame(d.Frame); !ok {
			return fmt.Errorf("%w: %w %q", ErrInvalidDocument, ErrUnknownFrame, d.Frame)
		}
	}

	ids := make(map[string]bool, len(d.Elements))
	for i, e := range d.Elements {
		switch {
		case strings.TrimSpace(e.ID) == "":
			return fmt.Errorf("%w: element %d has no id", ErrInvalidDocument, i)
		case ids[e.ID]:
			return fmt.Errorf("%w: duplicate element id %q", ErrInvalidDocument, e.ID)
		case !e.Type.Valid():
			return fmt.Errorf("%w: element %q has unknown type %q", ErrInvalidDocument, e.ID, e.Type)
		case e.Width < MinSize || e.Height < MinSize:
			return fmt.Errorf("%w: element %q is smaller than %vx%v", ErrInvalidDocument, e.ID, MinSize, MinSize)
		case e.Type == ElementField && e.Properties.FieldType == "":
			return fmt.Errorf("%w: field element %q has no field type", ErrInvalidDocument, e.ID)
		}
		ids[e.ID] = true
	}
	return nil
}

// Resolve returns a copy where every field element shows the matching value from
// data instead of its placeholder. Missing values keep the placeholder.
func (d Document) Resolve(data map[string]string) Document {
	out := d.Clone()
	for i, e := range out.Elements {
		if e.Type != ElementField {
			continue
		}
		if v, ok := data[e.Properties.FieldType]; ok && v != "" {
			out.Elements[i].Properties.Text = v
		}
	}
	return out
}

// SampleData is the participant used for previews.
func SampleData(date string) map[string]string {
	return map[string]string{
		"name":       "John Doe",
		"rollNumber": "2021001",
		"course":     "Computer Science",
		"year":       "3rd Year",
		"section":    "A",
		"email":      "john@student.edu",
		"phone":      "+1234567890",
		"date":       date,
	}
}
