package scanning

import (
	"fmt"
	"strings"
)

// DocumentExtractor implements the Extractor interface on top of the PDF
// text layer and Tesseract OCR
type DocumentExtractor struct {
	lang string
}

// NewDocumentExtractor creates a DocumentExtractor. lang is the Tesseract
// language model, "por" for the receipts this handles.
func NewDocumentExtractor(lang string) *DocumentExtractor {
	if lang == "" {
		lang = "por"
	}
	return &DocumentExtractor{lang: lang}
}

// ExtractLines extracts the document's text lines. PDFs use their text layer
// when one exists; scanned PDFs and images go through OCR.
func (e *DocumentExtractor) ExtractLines(data []byte, contentType string) ([]string, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))

	if mimeType == "application/pdf" {
		text, err := pdfText(data)
		if err != nil {
			return nil, err
		}
		if lines := splitLines(text); len(lines) > 0 {
			return lines, nil
		}
		// No text layer; fall through to OCR of the rasterized page.
	}

	pngData, err := prepareImageData(data, mimeType)
	if err != nil {
		return nil, err
	}

	text, err := ocrImage(pngData, e.lang)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", mimeType, err)
	}

	return splitLines(text), nil
}

// Close releases extractor resources (none held between extractions)
func (e *DocumentExtractor) Close() error {
	return nil
}
