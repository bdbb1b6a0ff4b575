package autocert

import (
	"regexp"
	"strings"

	"github.com/tdewolff/canvas"
)

/*
 * Attention: tdewolff/canvas uses mm as the unit of measurement. Layout works in mm too,
 * designer documents work in px and are converted with PxToMM.
 */

const DPI = 72

type TextAlign int

const (
	TextAlignCenter TextAlign = iota
	TextAlignLeft
	TextAlignRight
)

func (a TextAlign) canvasAlign() canvas.TextAlign {
	switch a {
	case TextAlignLeft:
		return canvas.Left
	case TextAlignRight:
		return canvas.Right
	default:
		return canvas.Center
	}
}

// Converts pixels to millimeters
func PxToMM(px float64) float64 {
	return (px * 25.4) / DPI
}

// Converts millimeters to pixels
func MMToPx(mm float64) float64 {
	return (mm * DPI) / 25.4
}

// Font sizes in layout ops are points, canvas faces take points as well.
const minFontSize = 6.0

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

func removeLineBreaks(text string) string {
	return strings.TrimSpace(lineBreaks.ReplaceAllString(text, " "))
}

type textRenderer struct {
	fontFamily *canvas.FontFamily
	// widest a single line may be, in mm
	maxWidth float64
}

func (tr *textRenderer) face(size float64, op DrawOp) *canvas.FontFace {
	style := canvas.FontRegular
	if op.Bold {
		style = canvas.FontBold
	}
	return tr.fontFamily.Face(size, op.Color.RGBA(), style, canvas.FontNormal)
}

// fitFontSize shrinks the font size one point at a time until the line fits maxWidth.
func (tr *textRenderer) fitFontSize(op DrawOp, text string) float64 {
	fontSize := op.FontSize
	if tr.maxWidth <= 0 {
		return fontSize
	}

	for fontSize > minFontSize {
		line := canvas.NewTextLine(tr.face(fontSize, op), text, canvas.Left)
		if line.Bounds().W() <= tr.maxWidth {
			break
		}
		fontSize--
	}
	return max(fontSize, minFontSize)
}

func (tr *textRenderer) draw(ctx *canvas.Context, op DrawOp) {
	text := removeLineBreaks(op.Text)
	if text == "" {
		return
	}

	fontSize := tr.fitFontSize(op, text)
	line := canvas.NewTextLine(tr.face(fontSize, op), text, op.Align.canvasAlign())
	ctx.DrawText(op.X, op.Y, line)
}
