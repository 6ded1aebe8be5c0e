package parsing

import "errors"

// ErrIncompleteRecord indicates extraction ran but produced no usable
// beneficiary/date pair, so the document must not be filed.
var ErrIncompleteRecord = errors.New("record missing beneficiary or date")

// Status is the terminal classification of one parse.
type Status int

const (
	// StatusParsed means the record and partition are ready for filing.
	StatusParsed Status = iota
	// StatusUnrecognized means no known dialect matched; not an error.
	StatusUnrecognized
	// StatusFailed means a recognized dialect failed to extract; Err says why.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusParsed:
		return "parsed"
	case StatusUnrecognized:
		return "unrecognized"
	default:
		return "failed"
	}
}

// Outcome is the result of parsing one document's line sequence.
type Outcome struct {
	Status    Status
	Dialect   Dialect
	Record    Record
	Partition Partition
	Err       error // set only when Status is StatusFailed
}

// Parse classifies the document, runs the matching extractor, and derives the
// filing partition. Every extraction-level failure is absorbed into a
// StatusFailed outcome so one malformed document never aborts a batch.
func Parse(lines []string) Outcome {
	dialect := Classify(lines)
	if dialect == DialectUnrecognized {
		return Outcome{Status: StatusUnrecognized, Dialect: dialect}
	}

	rec, err := extractorFor(dialect).Extract(lines)
	if err != nil {
		return Outcome{Status: StatusFailed, Dialect: dialect, Record: rec, Err: err}
	}

	if !rec.Complete() {
		return Outcome{Status: StatusFailed, Dialect: dialect, Record: rec, Err: ErrIncompleteRecord}
	}

	part, err := DerivePartition(rec.Date())
	if err != nil {
		return Outcome{Status: StatusFailed, Dialect: dialect, Record: rec, Err: err}
	}

	return Outcome{Status: StatusParsed, Dialect: dialect, Record: rec, Partition: part}
}
