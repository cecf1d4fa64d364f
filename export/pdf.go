package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PromptSheetPDF writes an image batch as a printable prompt sheet: a title
// page line followed by one numbered block per prompt with its image URLs.
func PromptSheetPDF(w io.Writer, title string, prompts []string, urls [][]string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.Ln(4)

	for i, prompt := range prompts {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("Prompt %d", i+1), "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, prompt, "", "L", false)

		if i < len(urls) {
			pdf.SetFont("Helvetica", "I", 8)
			for _, u := range urls[i] {
				pdf.MultiCell(0, 4, u, "", "L", false)
			}
		}
		pdf.Ln(3)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
