package autocert

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QR code edge in pixels; pdfcpu places it at 1pt per pixel.
const QRCodeSize = 64

// If generate qr code for pdf file, size 64 should be enough
func GenerateQRCode(link, outputPath string, size int) error {
	err := qrcode.WriteFile(link, qrcode.Medium, size, outputPath)
	if err != nil {
		return fmt.Errorf("%w: failed to generate QR code: %v", ErrExternalTool, err)
	}
	return nil
}

// GenerateQRCodePNG returns the PNG encoding of a QR code for link.
func GenerateQRCodePNG(link string, size int) ([]byte, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate QR code: %v", ErrExternalTool, err)
	}
	return png, nil
}
