package scanning

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// splitLines turns raw extracted text into the line sequence the parser
// consumes: NFC-normalized, whitespace-trimmed, empty lines dropped, page
// order preserved. NFC matters because Tesseract and PDF text layers disagree
// on how accented characters are composed, and the parser's anchor phrases
// ("transação", "beneficiário") are composed form.
func splitLines(text string) []string {
	text = norm.NFC.String(text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
