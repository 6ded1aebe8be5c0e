package scanning

// ReceiptFields contains payee and date information recovered from a receipt
// by the LLM fallback scanner
type ReceiptFields struct {
	Beneficiary string `json:"beneficiary"`
	Date        string `json:"date"` // ISO 8601 format
}

// Extractor produces the ordered, trimmed, non-empty text lines of a receipt
// document, from the PDF text layer or from OCR of an image
type Extractor interface {
	// ExtractLines extracts the document's text lines in page order
	ExtractLines(data []byte, contentType string) ([]string, error)
	// Close closes the extractor and releases resources
	Close() error
}

// Scanner defines the interface for the LLM fallback used on documents the
// rule-based parser does not recognize
type Scanner interface {
	// ScanReceipt analyzes a receipt image/PDF and extracts payee and date
	ScanReceipt(imageData []byte, contentType string) (*ReceiptFields, error)
	// Close closes the scanner and releases resources
	Close() error
}
