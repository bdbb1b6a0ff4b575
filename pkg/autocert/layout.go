package autocert

import (
	"strings"
	"time"
)

// A4 landscape in millimetres.
const (
	PageWidthMM  = 297.0
	PageHeightMM = 210.0
)

const (
	DefaultEventName = "EVENT NAME"
	FooterText       = "Generated by Certificate Generator"
	DateLayout       = "1/2/2006"
	maxExtraInfo     = 3
	extraInfoStep    = 8.0
)

type OpKind int

const (
	OpFillRect OpKind = iota
	OpStrokeRect
	OpFillRoundedRect
	OpText
)

// DrawOp is one drawing instruction in page coordinates (mm, origin top-left).
// Text ops are anchored on their baseline at X with the given alignment.
type DrawOp struct {
	Kind      OpKind
	X, Y      float64
	W, H      float64
	Radius    float64
	LineWidth float64
	Color     RGB
	Text      string
	FontSize  float64
	Bold      bool
	Align     TextAlign
}

type Page struct {
	Width  float64
	Height float64
	Ops    []DrawOp
}

// Texts returns the text of every text op in drawing order.
func (p Page) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

type LayoutOptions struct {
	// Now provides the default event date. Zero means time.Now.
	Now time.Time
	// CertificateNumber is printed above the footer when set.
	CertificateNumber string
}

func (o LayoutOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

var white = RGB{255, 255, 255}

// Layout lays out one certificate. It is a pure function of its inputs.
func Layout(p Participant, t Template, opts LayoutOptions) Page {
	w, h := PageWidthMM, PageHeightMM
	pal := t.Palette()
	cat := LookupCategory(p.Category)
	cx := w / 2

	text := func(s string, y, size float64, c RGB) DrawOp {
		return DrawOp{Kind: OpText, X: cx, Y: y, Text: s, FontSize: size, Color: c, Align: TextAlignCenter}
	}
	bold := func(op DrawOp) DrawOp {
		op.Bold = true
		return op
	}

	ops := []DrawOp{
		{Kind: OpFillRect, X: 0, Y: 0, W: w, H: h, Color: pal.Background},
		{Kind: OpStrokeRect, X: 10, Y: 10, W: w - 20, H: h - 20, LineWidth: 2, Color: pal.Primary},
		{Kind: OpStrokeRect, X: 15, Y: 15, W: w - 30, H: h - 30, LineWidth: 0.5, Color: pal.Primary},
		bold(text(cat.Title, 40, 32, pal.Primary)),
		text(cat.Subtitle, 60, 16, pal.Secondary),
		bold(text(strings.ToUpper(p.DisplayName), 85, 32, pal.Primary)),
		text(cat.Body, 105, 16, pal.Secondary),
	}

	event := p.Event()
	if event == "" {
		event = DefaultEventName
	}
	ops = append(ops, bold(text(event, 125, 24, pal.Accent)))

	date := p.Date()
	if date == "" {
		date = opts.now().Format(DateLayout)
	}
	ops = append(ops, text("Date: "+date, 145, 14, pal.Secondary))

	hasBadge := p.Category != CategoryParticipation
	if hasBadge {
		ops = append(ops,
			DrawOp{Kind: OpFillRoundedRect, X: cx - 30, Y: 155, W: 60, H: 15, Radius: 3, Color: pal.Accent},
			bold(text(cat.Label, 165, 12, white)),
		)
	}

	extra := p.ExtraInfo()
	if len(extra) > maxExtraInfo {
		extra = extra[:maxExtraInfo]
	}
	y := 160.0
	if hasBadge {
		y = 180
	}
	for _, line := range extra {
		ops = append(ops, text(line, y, 12, pal.Secondary))
		y += extraInfoStep
	}

	if opts.CertificateNumber != "" {
		ops = append(ops, text("Certificate No: "+opts.CertificateNumber, h-27, 10, pal.Secondary))
	}
	ops = append(ops, text(FooterText, h-20, 12, pal.Secondary))

	return Page{Width: w, Height: h, Ops: ops}
}
