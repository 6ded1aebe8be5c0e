package parsing

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrLineOutOfRange indicates an anchor was found too close to the end of the
// document for its lookahead offset. Truncated OCR output triggers this; the
// orchestrator reports it as a per-document failure.
var ErrLineOutOfRange = errors.New("anchor lookahead past end of document")

// Record holds the fields extracted from one receipt. Zero values mean the
// field was not found.
type Record struct {
	Beneficiary string
	PaymentDate string // canonical DD_MM_YYYY
	DueDate     string // canonical DD_MM_YYYY
}

// Date returns the filing date for the record, preferring the payment date
// over the boleto due date.
func (r Record) Date() string {
	if r.PaymentDate != "" {
		return r.PaymentDate
	}
	return r.DueDate
}

// Complete reports whether the record carries everything filing needs.
func (r Record) Complete() bool {
	return r.Beneficiary != "" && r.Date() != ""
}

// Extractor scans a line sequence with dialect-specific anchors and offsets
// and populates a Record. Extractors are pure: same lines, same record.
type Extractor interface {
	Extract(lines []string) (Record, error)
}

// lineAt reads the line at index i, returning ErrLineOutOfRange when an
// anchor's lookahead runs past the sequence.
func lineAt(lines []string, i int) (string, error) {
	if i >= len(lines) {
		return "", fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, i, len(lines))
	}
	return lines[i], nil
}

// transactionExtractor handles "comprovante de transação" receipts. The payee
// appears one line below the "beneficiário" (or "você pagou a") anchor, and
// the boleto due date one line below "vencimento do boleto" in DD/MM/YYYY.
type transactionExtractor struct{}

func (transactionExtractor) Extract(lines []string) (Record, error) {
	var rec Record

	for i, line := range lines {
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "beneficiário"):
			next, err := lineAt(lines, i+1)
			if err != nil {
				return rec, err
			}
			// The name runs up to the "DOC"/"DO " suffix the bank appends.
			name, _, _ := strings.Cut(next, "DO")
			rec.Beneficiary = NormalizeName(name)

		case strings.Contains(lower, "você pagou a"):
			next, err := lineAt(lines, i+1)
			if err != nil {
				return rec, err
			}
			rec.Beneficiary = NormalizeName(next)

		case strings.Contains(lower, "vencimento do boleto"):
			next, err := lineAt(lines, i+1)
			if err != nil {
				return rec, err
			}
			rec.DueDate = SlashDateToUnderscore(next)
		}
	}

	return rec, nil
}

// longDateRe matches the long-form Portuguese date on payment receipts,
// e.g. "15 de março de 2024", after the line has been lowercased.
var longDateRe = regexp.MustCompile(`(\d{1,2}) de (\p{L}+) de (\d{4})`)

// paymentExtractor handles "comprovante de pagamento" receipts: the payment
// date follows the "comprovante" header line, the payee follows a line that
// is exactly "para".
type paymentExtractor struct{}

func (paymentExtractor) Extract(lines []string) (Record, error) {
	var rec Record

	for i, line := range lines {
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "comprovante"):
			next, err := lineAt(lines, i+1)
			if err != nil {
				return rec, err
			}
			if m := longDateRe.FindStringSubmatch(strings.ToLower(next)); m != nil {
				date, err := NamedMonthToCanonical(m[1], m[2], m[3])
				if err != nil {
					return rec, err
				}
				rec.PaymentDate = date
			}

		case lower == "para":
			next, err := lineAt(lines, i+1)
			if err != nil {
				return rec, err
			}
			rec.Beneficiary = NormalizeName(next)
		}
	}

	return rec, nil
}

// imageExtractor handles OCR output from transfer screenshots: the payment
// date comes from the embedded timestamp, and the payee sits two lines below
// the "destino" anchor, prefixed by "Nome" or "Favorec" on its own line.
type imageExtractor struct{}

func (imageExtractor) Extract(lines []string) (Record, error) {
	var rec Record

	for i, line := range lines {
		if m := ocrTimestampRe.FindString(line); m != "" {
			date, err := OCRDateToCanonical(m)
			if err != nil {
				return rec, err
			}
			rec.PaymentDate = date
		}

		if strings.Contains(strings.ToLower(line), "destino") {
			target, err := lineAt(lines, i+2)
			if err != nil {
				return rec, err
			}

			targetLower := strings.ToLower(target)
			switch {
			case strings.Contains(targetLower, "nome"):
				rec.Beneficiary = NormalizeName(afterLastMarker(target, "Nome"))
			case strings.Contains(targetLower, "favorec"):
				rec.Beneficiary = NormalizeName(afterLastMarker(target, "Favorec"))
			}
		}
	}

	return rec, nil
}

// afterLastMarker returns the text following the last occurrence of marker.
// A payee whose own name contains the marker word gets truncated; that
// mirrors how these screenshots label the field and is a known limitation.
func afterLastMarker(line, marker string) string {
	idx := strings.LastIndex(line, marker)
	if idx == -1 {
		return line
	}
	return line[idx+len(marker):]
}

// extractorFor returns the extractor variant for a recognized dialect.
func extractorFor(d Dialect) Extractor {
	switch d {
	case DialectTransaction:
		return transactionExtractor{}
	case DialectPayment:
		return paymentExtractor{}
	case DialectImage:
		return imageExtractor{}
	default:
		return nil
	}
}
