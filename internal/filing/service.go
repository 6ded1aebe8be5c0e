package filing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brmoraes/comprovante-filer/internal/parsing"
	"github.com/brmoraes/comprovante-filer/internal/scanning"
)

// contentTypes maps the inbox extensions this service picks up to the MIME
// type handed to the extractor
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".heic": "image/heic",
	".heif": "image/heic",
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service walks the inbox, parses each receipt, and files the recognized
// ones into the archive, journaling every outcome
type Service struct {
	inbox      string
	extractor  scanning.Extractor
	fallback   scanning.Scanner // optional, may be nil
	archive    *Archive
	journal    *Journal
	logger     *slog.Logger
	timeSource TimeSource
}

// NewService creates a new Service. fallback may be nil, in which case
// unrecognized documents are simply left in the inbox.
func NewService(inbox string, extractor scanning.Extractor, fallback scanning.Scanner, archive *Archive, journal *Journal, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		inbox:      inbox,
		extractor:  extractor,
		fallback:   fallback,
		archive:    archive,
		journal:    journal,
		logger:     logger,
		timeSource: &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with a custom time source for testing
func NewServiceWithDeps(inbox string, extractor scanning.Extractor, fallback scanning.Scanner, archive *Archive, journal *Journal, logger *slog.Logger, timeSrc TimeSource) *Service {
	s := NewService(inbox, extractor, fallback, archive, journal, logger)
	s.timeSource = timeSrc
	return s
}

// Run processes every supported document in the inbox. One bad document
// never aborts the batch; each outcome is logged and journaled on its own.
func (s *Service) Run(ctx context.Context) error {
	dirEntries, err := os.ReadDir(s.inbox)
	if err != nil {
		return fmt.Errorf("reading inbox: %w", err)
	}

	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if _, ok := contentTypes[strings.ToLower(filepath.Ext(de.Name()))]; ok {
			paths = append(paths, filepath.Join(s.inbox, de.Name()))
		}
	}

	s.logger.Info("Starting batch", "inbox", s.inbox, "documents", len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := s.ProcessFile(path)
		if err := s.journal.Record(entry); err != nil {
			s.logger.Error("Failed to journal outcome", "source", entry.Source, "error", err)
		}
	}

	return nil
}

// ProcessFile extracts, parses, and files one document, returning the journal
// entry describing what happened. The source file is left untouched unless
// parsing produced a complete record.
func (s *Service) ProcessFile(path string) *Entry {
	entry := &Entry{
		Source:      filepath.Base(path),
		ProcessedAt: s.timeSource.Now(),
	}
	contentType := contentTypes[strings.ToLower(filepath.Ext(path))]

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("Failed to read document", "source", entry.Source, "error", err)
		entry.Status = "failed"
		entry.Reason = err.Error()
		return entry
	}

	lines, err := s.extractor.ExtractLines(data, contentType)
	if err != nil {
		s.logger.Error("Failed to extract text", "source", entry.Source, "error", err)
		entry.Status = "failed"
		entry.Reason = err.Error()
		return entry
	}

	outcome := parsing.Parse(lines)
	entry.Dialect = outcome.Dialect.String()

	switch outcome.Status {
	case parsing.StatusParsed:
		s.file(entry, path, outcome.Record, outcome.Partition)

	case parsing.StatusUnrecognized:
		if s.fallback == nil {
			s.logger.Warn("Unrecognized receipt layout, leaving in inbox", "source", entry.Source)
			entry.Status = "unrecognized"
			return entry
		}
		s.scanWithFallback(entry, path, data, contentType)

	case parsing.StatusFailed:
		s.logger.Warn("Extraction failed, leaving in inbox", "source", entry.Source, "dialect", entry.Dialect, "error", outcome.Err)
		entry.Status = "failed"
		entry.Reason = outcome.Err.Error()
	}

	return entry
}

// file moves the document into the archive and fills in the entry
func (s *Service) file(entry *Entry, path string, rec parsing.Record, part parsing.Partition) {
	dst, err := s.archive.Store(path, rec, part)
	if err != nil {
		s.logger.Error("Failed to archive document", "source", entry.Source, "error", err)
		entry.Status = "failed"
		entry.Reason = err.Error()
		return
	}

	entry.Status = "parsed"
	entry.Beneficiary = rec.Beneficiary
	entry.Date = rec.Date()
	entry.ArchivedTo = dst
	s.logger.Info("Document filed", "source", entry.Source, "dialect", entry.Dialect, "destination", dst)
}

// scanWithFallback asks the LLM scanner for the fields the rule-based parser
// could not find. Anything less than a complete answer leaves the file alone.
func (s *Service) scanWithFallback(entry *Entry, path string, data []byte, contentType string) {
	fields, err := s.fallback.ScanReceipt(data, contentType)
	if err != nil {
		s.logger.Warn("Fallback scan failed, leaving in inbox", "source", entry.Source, "error", err)
		entry.Status = "unrecognized"
		entry.Reason = err.Error()
		return
	}

	rec, err := recordFromFields(fields)
	if err != nil {
		s.logger.Warn("Fallback scan incomplete, leaving in inbox", "source", entry.Source, "error", err)
		entry.Status = "unrecognized"
		entry.Reason = err.Error()
		return
	}

	part, err := parsing.DerivePartition(rec.Date())
	if err != nil {
		entry.Status = "failed"
		entry.Reason = err.Error()
		return
	}

	entry.Dialect = "fallback"
	s.file(entry, path, rec, part)
}

// recordFromFields converts the scanner's ISO answer into the same canonical
// record the rule-based extractors produce
func recordFromFields(fields *scanning.ReceiptFields) (parsing.Record, error) {
	var rec parsing.Record

	rec.Beneficiary = parsing.NormalizeName(fields.Beneficiary)
	if fields.Date != "" {
		d, err := time.Parse("2006-01-02", fields.Date)
		if err != nil {
			return rec, fmt.Errorf("fallback date %q: %w", fields.Date, err)
		}
		rec.PaymentDate = d.Format("02_01_2006")
	}

	if !rec.Complete() {
		return rec, parsing.ErrIncompleteRecord
	}
	return rec, nil
}
