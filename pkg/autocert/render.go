package autocert

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

// Renderer turns laid out pages into PDF documents. It is safe for concurrent use
// once constructed.
type Renderer struct {
	cfg        *Config
	fontFamily *canvas.FontFamily
}

func NewRenderer(cfg *Config) (*Renderer, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	fontFamily, err := NewFontLoader(cfg).LoadFont(cfg.FontName)
	if err != nil {
		return nil, err
	}
	if fontFamily == nil {
		return nil, fmt.Errorf("%w: font family is nil", ErrExternalTool)
	}

	return &Renderer{cfg: cfg, fontFamily: fontFamily}, nil
}

// RenderPDF draws page onto a single page PDF written to w.
func (r *Renderer) RenderPDF(page Page, w io.Writer) error {
	c := canvas.New(page.Width, page.Height)
	ctx := canvas.NewContext(c)
	// Change coordination from bottom-left to top-left
	ctx.SetCoordSystem(canvas.CartesianIV)

	tr := &textRenderer{fontFamily: r.fontFamily, maxWidth: page.Width - 40}
	for _, op := range page.Ops {
		switch op.Kind {
		case OpFillRect:
			ctx.SetFillColor(op.Color.RGBA())
			ctx.SetStrokeColor(canvas.Transparent)
			ctx.DrawPath(op.X, op.Y, canvas.Rectangle(op.W, op.H))
		case OpStrokeRect:
			ctx.SetFillColor(canvas.Transparent)
			ctx.SetStrokeColor(op.Color.RGBA())
			ctx.SetStrokeWidth(op.LineWidth)
			ctx.DrawPath(op.X, op.Y, canvas.Rectangle(op.W, op.H))
		case OpFillRoundedRect:
			ctx.SetFillColor(op.Color.RGBA())
			ctx.SetStrokeColor(canvas.Transparent)
			ctx.DrawPath(op.X, op.Y, canvas.RoundedRectangle(op.W, op.H, op.Radius))
		case OpText:
			tr.draw(ctx, op)
		default:
			return fmt.Errorf("%w: unknown draw op %d", ErrExternalTool, op.Kind)
		}
	}

	if err := c.Write(w, renderers.PDF()); err != nil {
		return fmt.Errorf("%w: failed to write PDF: %v", ErrExternalTool, err)
	}
	return nil
}

// Render lays out and renders one certificate. When the config has a verify URL
// pattern and opts carries a certificate number, a QR code is stamped bottom right.
func (r *Renderer) Render(p Participant, t Template, opts LayoutOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderPDF(Layout(p, t, opts), &buf); err != nil {
		return nil, err
	}

	if r.cfg.VerifyURLPattern == "" || opts.CertificateNumber == "" {
		return buf.Bytes(), nil
	}

	qr, err := GenerateQRCodePNG(fmt.Sprintf(r.cfg.VerifyURLPattern, opts.CertificateNumber), QRCodeSize)
	if err != nil {
		return nil, err
	}
	return EmbedQRCodeToPdf(buf.Bytes(), qr, r.cfg.tmpDir())
}
