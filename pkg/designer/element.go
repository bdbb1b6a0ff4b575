package designer

import "fmt"

type ElementType string

const (
	ElementText  ElementType = "text"
	ElementField ElementType = "field"
	ElementImage ElementType = "image"
	ElementShape ElementType = "shape"
)

func (t ElementType) Valid() bool {
	switch t {
	case ElementText, ElementField, ElementImage, ElementShape:
		return true
	}
	return false
}

// MinSize is the smallest width or height an element can be resized to.
const MinSize = 20.0

// Element is one positioned object on the designer canvas. Geometry is in canvas px.
type Element struct {
	ID         string      `json:"id"`
	Type       ElementType `json:"type"`
	Subtype    string      `json:"subtype,omitempty"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Rotation   float64     `json:"rotation"`
	ZIndex     int         `json:"zIndex"`
	Properties Properties  `json:"properties"`
}

// Properties holds the type specific style of an element. Only the fields relevant to
// the element type are set.
type Properties struct {
	// text and field
	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`
	Color      string  `json:"color,omitempty"`
	Alignment  string  `json:"alignment,omitempty"`
	FieldType  string  `json:"fieldType,omitempty"`

	// image
	ImageURL            string `json:"imageUrl,omitempty"`
	PreserveAspectRatio bool   `json:"preserveAspectRatio,omitempty"`

	// shape
	Shape           string  `json:"shape,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BorderWidth     float64 `json:"borderWidth,omitempty"`
	BorderRadius    float64 `json:"borderRadius,omitempty"`
}

// Contains reports whether the point lies inside the element box, edges included.
func (e Element) Contains(x, y float64) bool {
	return x >= e.X && x <= e.X+e.Width && y >= e.Y && y <= e.Y+e.Height
}

// FieldPlaceholder is the text shown for a data bound field.
func FieldPlaceholder(fieldType string) string {
	return fmt.Sprintf("{%s}", fieldType)
}

const (
	defaultFontFamily = "Arial"
	defaultColor      = "#000000"
)

func newTextElement(id string, x, y float64) Element {
	return Element{
		ID:     id,
		Type:   ElementText,
		X:      x,
		Y:      y,
		Width:  200,
		Height: 30,
		Properties: Properties{
			Text:       "Sample Text",
			FontSize:   16,
			FontFamily: defaultFontFamily,
			FontWeight: "normal",
			Color:      defaultColor,
			Alignment:  "left",
		},
	}
}

func newFieldElement(id string, x, y float64, fieldType string) Element {
	return Element{
		ID:     id,
		Type:   ElementField,
		X:      x,
		Y:      y,
		Width:  200,
		Height: 30,
		Properties: Properties{
			FieldType:  fieldType,
			Text:       FieldPlaceholder(fieldType),
			FontSize:   16,
			FontFamily: defaultFontFamily,
			FontWeight: "normal",
			Color:      defaultColor,
			Alignment:  "left",
		},
	}
}

func newImageElement(id string, x, y float64, imageURL string) Element {
	return Element{
		ID:         id,
		Type:       ElementImage,
		X:          x,
		Y:          y,
		Width:      150,
		Height:     100,
		Properties: Properties{ImageURL: imageURL},
	}
}

func newShapeElement(id string, x, y float64) Element {
	return Element{
		ID:     id,
		Type:   ElementShape,
		X:      x,
		Y:      y,
		Width:  100,
		Height: 100,
		Properties: Properties{
			BackgroundColor: "#3498db",
			BorderColor:     "#2980b9",
			BorderWidth:     2,
			BorderRadius:    0,
		},
	}
}

// Tool is a toolbox entry that drops a preset element at the canvas centre.
type Tool string

const (
	ToolHeading    Tool = "heading"
	ToolSubheading Tool = "subheading"
	ToolBody       Tool = "body"
	ToolRectangle  Tool = "rectangle"
	ToolCircle     Tool = "circle"
	ToolLine       Tool = "line"
	ToolImage      Tool = "image"
)

func (t Tool) elementType() ElementType {
	switch t {
	case ToolHeading, ToolSubheading, ToolBody:
		return ElementText
	case ToolImage:
		return ElementImage
	default:
		return ElementShape
	}
}

func newToolElement(id string, tool Tool, canvas Canvas, zIndex int) Element {
	e := Element{
		ID:      id,
		Type:    tool.elementType(),
		Subtype: string(tool),
		X:       canvas.Width/2 - 100,
		Y:       canvas.Height/2 - 25,
		Width:   200,
		Height:  50,
		ZIndex:  zIndex,
	}

	switch e.Type {
	case ElementText:
		e.Properties = Properties{
			Text:       toolText(tool),
			FontFamily: defaultFontFamily,
			FontSize:   14,
			FontWeight: "normal",
			Color:      defaultColor,
			Alignment:  "center",
		}
		switch tool {
		case ToolHeading:
			e.Properties.FontSize = 24
			e.Properties.FontWeight = "bold"
		case ToolSubheading:
			e.Properties.FontSize = 18
		}
	case ElementShape:
		e.Properties = Properties{
			Shape:           string(tool),
			BackgroundColor: "#3498db",
			BorderColor:     "#2c3e50",
			BorderWidth:     1,
		}
	case ElementImage:
		e.Properties = Properties{PreserveAspectRatio: true}
	}
	return e
}

func toolText(tool Tool) string {
	switch tool {
	case ToolHeading:
		return "Certificate Title"
	case ToolSubheading:
		return "Subtitle"
	case ToolBody:
		return "Body Text"
	default:
		return "Text"
	}
}
