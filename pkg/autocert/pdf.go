package autocert

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Apply qr code to the bottom right corner of every page of a PDF.
// pdfcpu only reads image watermarks from disk, so the QR code goes through tmpDir.
func EmbedQRCodeToPdf(pdf []byte, qrPNG []byte, tmpDir string) ([]byte, error) {
	qrFile, err := os.CreateTemp(tmpDir, "certgen_qr_*.png")
	if err != nil {
		return nil, err
	}
	defer os.Remove(qrFile.Name())

	if _, err := qrFile.Write(qrPNG); err != nil {
		qrFile.Close()
		return nil, err
	}
	if err := qrFile.Close(); err != nil {
		return nil, err
	}

	description := "pos: br, off: -20 20, scale: 1 abs, rotation: 0"
	var out bytes.Buffer
	if err := api.AddImageWatermarks(bytes.NewReader(pdf), &out, nil, true, qrFile.Name(), description, nil); err != nil {
		return nil, fmt.Errorf("%w: failed to embed QR code in PDF: %v", ErrExternalTool, err)
	}
	return out.Bytes(), nil
}

// MergePdfs concatenates single certificates into one document in order.
func MergePdfs(pdfs [][]byte, w io.Writer) error {
	if len(pdfs) == 0 {
		return fmt.Errorf("%w: nothing to merge", ErrValidation)
	}

	rsc := make([]io.ReadSeeker, len(pdfs))
	for i, b := range pdfs {
		rsc[i] = bytes.NewReader(b)
	}
	if err := api.MergeRaw(rsc, w, false, nil); err != nil {
		return fmt.Errorf("%w: failed to merge PDFs: %v", ErrExternalTool, err)
	}
	return nil
}

// PdfPageCount reports the number of pages of a PDF document.
func PdfPageCount(pdf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read PDF: %v", ErrExternalTool, err)
	}
	return n, nil
}
