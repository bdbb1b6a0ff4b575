package autocert

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type Palette struct {
	Background RGB `json:"background"`
	Primary    RGB `json:"primary"`
	Secondary  RGB `json:"secondary"`
	Accent     RGB `json:"accent"`
}

// Template is one of the fixed certificate styles.
type Template int

const (
	TemplateModern Template = iota
	TemplateClassic
	TemplateColorful
	TemplateSimple
)

// FallbackTemplate is used whenever a template name is not recognised.
const FallbackTemplate = TemplateModern

type templateInfo struct {
	id          string
	name        string
	description string
	palette     Palette
}

var templateInfos = [...]templateInfo{
	TemplateModern: {
		id:          "modern",
		name:        "Modern Certificate",
		description: "Clean and professional design with modern typography",
		palette: Palette{
			Background: RGB{245, 248, 255},
			Primary:    RGB{102, 126, 234},
			Secondary:  RGB{118, 75, 162},
			Accent:     RGB{40, 167, 69},
		},
	},
	TemplateClassic: {
		id:          "classic",
		name:        "Classic Certificate",
		description: "Traditional formal certificate with elegant borders",
		palette: Palette{
			Background: RGB{255, 248, 240},
			Primary:    RGB{139, 69, 19},
			Secondary:  RGB{160, 82, 45},
			Accent:     RGB{218, 165, 32},
		},
	},
	TemplateColorful: {
		id:          "colorful",
		name:        "Colorful Certificate",
		description: "Vibrant and energetic design perfect for events",
		palette: Palette{
			Background: RGB{255, 245, 238},
			Primary:    RGB{255, 99, 71},
			Secondary:  RGB{255, 140, 0},
			Accent:     RGB{50, 205, 50},
		},
	},
	TemplateSimple: {
		id:          "simple",
		name:        "Minimalist Certificate",
		description: "Simple and clean design focusing on content",
		palette: Palette{
			Background: RGB{250, 250, 250},
			Primary:    RGB{52, 58, 64},
			Secondary:  RGB{108, 117, 125},
			Accent:     RGB{0, 123, 255},
		},
	},
}

func (t Template) info() templateInfo {
	if t < 0 || int(t) >= len(templateInfos) {
		return templateInfos[FallbackTemplate]
	}
	return templateInfos[t]
}

func (t Template) String() string      { return t.info().id }
func (t Template) Name() string        { return t.info().name }
func (t Template) Description() string { return t.info().description }
func (t Template) Palette() Palette    { return t.info().palette }

func (t Template) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Template) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = LookupTemplate(s)
	return nil
}

// ParseTemplate resolves a template id, reporting whether it is known.
func ParseTemplate(name string) (Template, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, info := range templateInfos {
		if info.id == name {
			return Template(i), true
		}
	}
	return FallbackTemplate, false
}

// LookupTemplate resolves a template id and falls back to the modern template.
func LookupTemplate(name string) Template {
	t, _ := ParseTemplate(name)
	return t
}

func Templates() []Template {
	out := make([]Template, len(templateInfos))
	for i := range templateInfos {
		out[i] = Template(i)
	}
	return out
}
