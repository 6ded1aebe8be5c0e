package parsing

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrDateFormat indicates no recognizable OCR date was found in the text
	ErrDateFormat = errors.New("no recognizable date in text")

	// ErrUnknownMonth indicates a month name outside the Portuguese table
	ErrUnknownMonth = errors.New("unknown month name")

	// ErrMalformedDateToken indicates a date token that is not DD_MM_YYYY
	ErrMalformedDateToken = errors.New("malformed date token")
)

// monthCodes maps the uppercase 3-letter month codes produced by OCR output
// to their 2-digit numeric form
var monthCodes = map[string]string{
	"JAN": "01", "FEV": "02", "MAR": "03",
	"ABR": "04", "MAI": "05", "JUN": "06",
	"JUL": "07", "AGO": "08", "SET": "09",
	"OUT": "10", "NOV": "11", "DEZ": "12",
}

// monthNames maps full lowercase Portuguese month names to their 2-digit form
var monthNames = map[string]string{
	"janeiro": "01", "fevereiro": "02", "março": "03",
	"abril": "04", "maio": "05", "junho": "06",
	"julho": "07", "agosto": "08", "setembro": "09",
	"outubro": "10", "novembro": "11", "dezembro": "12",
}

// monthAbbrevs maps 2-digit month numbers to the lowercase 3-letter
// abbreviations used for archive directory names
var monthAbbrevs = map[string]string{
	"01": "jan", "02": "fev", "03": "mar",
	"04": "abr", "05": "mai", "06": "jun",
	"07": "jul", "08": "ago", "09": "set",
	"10": "out", "11": "nov", "12": "dez",
}

var ocrDateRe = regexp.MustCompile(`(\d{2})\s+(JAN|FEV|MAR|ABR|MAI|JUN|JUL|AGO|SET|OUT|NOV|DEZ)\s+(\d{4})`)

// Partition is the (year, month) pair that keys the archive subdirectory
// for a filed document
type Partition struct {
	Year  string
	Month string // 3-letter lowercase abbreviation, e.g. "mar"
}

// OCRDateToCanonical scans text for a "DD MON YYYY" date with an uppercase
// month code and returns the canonical DD_MM_YYYY token. The month codes are
// case-sensitive: Tesseract emits them uppercase on the receipts this handles.
func OCRDateToCanonical(text string) (string, error) {
	m := ocrDateRe.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrDateFormat, text)
	}
	return fmt.Sprintf("%s_%s_%s", m[1], monthCodes[m[2]], m[3]), nil
}

// SlashDateToUnderscore takes the first whitespace-delimited token of line and
// replaces every "/" with "_", turning DD/MM/YYYY into DD_MM_YYYY. Malformed
// tokens pass through unchanged; validation happens later in DerivePartition.
func SlashDateToUnderscore(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.ReplaceAll(fields[0], "/", "_")
}

// NamedMonthToCanonical builds a canonical DD_MM_YYYY token from the parts of
// a long-form Portuguese date ("15 de março de 2024"). The month name must be
// lowercase.
func NamedMonthToCanonical(day, monthName, year string) (string, error) {
	num, ok := monthNames[monthName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMonth, monthName)
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s_%s_%s", day, num, year), nil
}

// DerivePartition splits a canonical DD_MM_YYYY token into the archive
// partition. This is the only place the display month abbreviation is
// produced; extractors always hand over the numeric form.
func DerivePartition(token string) (Partition, error) {
	parts := strings.Split(token, "_")
	if len(parts) != 3 {
		return Partition{}, fmt.Errorf("%w: %q", ErrMalformedDateToken, token)
	}
	abbrev, ok := monthAbbrevs[parts[1]]
	if !ok {
		return Partition{}, fmt.Errorf("%w: month %q", ErrMalformedDateToken, parts[1])
	}
	return Partition{Year: parts[2], Month: abbrev}, nil
}
