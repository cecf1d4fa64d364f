package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// PromptsCSV writes an image batch as CSV: one row per prompt with its
// rendered image URLs. urls may be shorter than prompts when renders are
// still pending.
func PromptsCSV(w io.Writer, prompts []string, urls [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"number", "prompt", "image_urls"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, prompt := range prompts {
		var joined string
		if i < len(urls) {
			joined = strings.Join(urls[i], " ")
		}
		row := []string{fmt.Sprintf("%d", i+1), prompt, joined}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
