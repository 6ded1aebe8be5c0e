package parsing

import (
	"regexp"
	"strings"
)

// Dialect identifies a known receipt layout. The set is closed; a document
// that matches no marker is DialectUnrecognized, which is a normal terminal
// classification rather than an error.
type Dialect int

const (
	DialectUnrecognized Dialect = iota
	DialectTransaction
	DialectPayment
	DialectImage
)

func (d Dialect) String() string {
	switch d {
	case DialectTransaction:
		return "transaction"
	case DialectPayment:
		return "payment"
	case DialectImage:
		return "image"
	default:
		return "unrecognized"
	}
}

// ocrTimestampRe matches the timestamp Tesseract reads off bank transfer
// screenshots: "DD MON YYYY - HH:MM:SS" with an uppercase month code.
var ocrTimestampRe = regexp.MustCompile(`\b\d{2}\s+(JAN|FEV|MAR|ABR|MAI|JUN|JUL|AGO|SET|OUT|NOV|DEZ)\s+\d{4}\s*-\s*\d{2}:\d{2}:\d{2}\b`)

// Classify determines the receipt dialect. The two comprovante layouts
// announce themselves in the first line; the image dialect has no header, so
// its timestamp marker is probed on every line. Classify is total: any input,
// including an empty sequence, maps to exactly one dialect.
func Classify(lines []string) Dialect {
	if len(lines) == 0 {
		return DialectUnrecognized
	}

	first := strings.ToLower(lines[0])
	if strings.Contains(first, "comprovante de transação") {
		return DialectTransaction
	}
	if strings.Contains(first, "comprovante de pagamento") {
		return DialectPayment
	}

	for _, line := range lines {
		if ocrTimestampRe.MatchString(line) {
			return DialectImage
		}
	}

	return DialectUnrecognized
}
