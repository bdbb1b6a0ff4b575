package designer

import "sort"

type BorderStyle string

const (
	BorderSolid      BorderStyle = "solid"
	BorderDouble     BorderStyle = "double"
	BorderDecorative BorderStyle = "decorative"
)

type Border struct {
	Width float64     `json:"width"`
	Color string      `json:"color,omitempty"`
	Style BorderStyle `json:"style,omitempty"`
}

// Gradient is a two stop linear gradient drawn from the top-left to the bottom-right corner.
type Gradient struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Frame is a predefined background and border treatment for the whole canvas.
type Frame struct {
	Name       string    `json:"name"`
	Background string    `json:"background"`
	Gradient   *Gradient `json:"gradient,omitempty"`
	Border     Border    `json:"border"`
	Corners    string    `json:"corners"`
	Ornament   string    `json:"ornament,omitempty"`
}

var frames = map[string]Frame{
	"classic": {
		Background: "#f8f9fa",
		Border:     Border{Width: 20, Color: "#2c3e50", Style: BorderDouble},
		Corners:    "rounded",
	},
	"modern": {
		Background: "#667eea",
		Gradient:   &Gradient{From: "#667eea", To: "#764ba2"},
		Border:     Border{Width: 0},
		Corners:    "sharp",
	},
	"elegant": {
		Background: "#ffffff",
		Border:     Border{Width: 15, Color: "#d4af37", Style: BorderSolid},
		Corners:    "rounded",
		Ornament:   "floral",
	},
	"minimal": {
		Background: "#ffffff",
		Border:     Border{Width: 2, Color: "#e2e8f0", Style: BorderSolid},
		Corners:    "sharp",
	},
	"ornate": {
		Background: "#fef7e7",
		Border:     Border{Width: 25, Color: "#8b5a3c", Style: BorderDecorative},
		Corners:    "rounded",
	},
	"corporate": {
		Background: "#f8fafc",
		Border:     Border{Width: 10, Color: "#3498db", Style: BorderSolid},
		Corners:    "sharp",
	},
}

func LookupFrame(name string) (Frame, bool) {
	f, ok := frames[name]
	if !ok {
		return Frame{}, false
	}
	f.Name = name
	if f.Gradient != nil {
		g := *f.Gradient
		f.Gradient = &g
	}
	return f, true
}

// FrameNames lists the predefined frames alphabetically.
func FrameNames() []string {
	names := make([]string, 0, len(frames))
	for name := range frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BorderRect is one stroked rectangle of a frame border.
type BorderRect struct {
	X, Y, Width, Height float64
	LineWidth           float64
}

// BorderRects returns the rectangles to stroke for the frame on a canvas of the given
// size. Double borders get a second rectangle at a quarter of the border width.
func (f Frame) BorderRects(width, height float64) []BorderRect {
	w := f.Border.Width
	if w <= 0 {
		return nil
	}

	rects := []BorderRect{{X: w / 2, Y: w / 2, Width: width - w, Height: height - w, LineWidth: w}}
	if f.Border.Style == BorderDouble {
		rects = append(rects, BorderRect{X: w / 4, Y: w / 4, Width: width - w/2, Height: height - w/2, LineWidth: w})
	}
	return rects
}
