package autocert

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const ImageContentType = "image/webp"

// NormalizeImage decodes a png, jpeg or webp image, shrinks it to fit within
// maxWidth x maxHeight keeping its aspect ratio and re-encodes it as lossy webp.
// Images already within bounds are only re-encoded.
func NormalizeImage(r io.Reader, maxWidth, maxHeight int) ([]byte, image.Point, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("%w: failed to read image: %v", ErrFormat, err)
	}

	b := img.Bounds()
	if maxWidth > 0 && maxHeight > 0 && (b.Dx() > maxWidth || b.Dy() > maxHeight) {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return nil, image.Point{}, fmt.Errorf("%w: failed to encode image: %v", ErrExternalTool, err)
	}

	return buf.Bytes(), img.Bounds().Size(), nil
}
