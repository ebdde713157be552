package util

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractPDFText pulls the text layer out of a PDF held in memory. The
// gateway receives the raw document bytes regardless; this text rides along
// as extra context, so a scanned PDF with no text layer is not an error for
// the caller.
func ExtractPDFText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(b.String())
	if result == "" {
		return "", fmt.Errorf("no text layer found in PDF")
	}
	return result, nil
}
