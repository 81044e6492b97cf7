package certificate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ExportPDF wraps a rendered certificate JPEG in a single landscape A4
// page and returns the PDF path. The PDF sits next to the JPEG with
// the same base name.
func ExportPDF(jpegPath string) (string, error) {
	if _, err := os.Stat(jpegPath); err != nil {
		return "", fmt.Errorf("certificate image not found: %w", err)
	}

	pdfPath := strings.TrimSuffix(jpegPath, filepath.Ext(jpegPath)) + ".pdf"

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()

	width, height := pdf.GetPageSize()
	pdf.ImageOptions(jpegPath, 0, 0, width, height, false,
		gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}, 0, "")

	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return "", fmt.Errorf("failed to write certificate pdf: %w", err)
	}

	return pdfPath, nil
}
