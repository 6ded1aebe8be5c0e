package filing

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brmoraes/comprovante-filer/internal/parsing"
)

// Archive files parsed receipts into a date-partitioned directory tree:
// <root>/<year>/<month>/<beneficiary>_<date><ext>
type Archive struct {
	root string
}

// NewArchive creates an Archive rooted at root, creating it if needed
func NewArchive(root string) (*Archive, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &Archive{root: root}, nil
}

// Store moves the document at src into its partition directory under the
// archive root and returns the destination path. The record must be complete;
// incomplete records are rejected before filing ever starts.
func (a *Archive) Store(src string, rec parsing.Record, part parsing.Partition) (string, error) {
	if !rec.Complete() {
		return "", fmt.Errorf("refusing to file incomplete record for %s", filepath.Base(src))
	}

	dir := filepath.Join(a.root, part.Year, part.Month)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating partition directory: %w", err)
	}

	dst := filepath.Join(dir, fmt.Sprintf("%s_%s%s", rec.Beneficiary, rec.Date(), normalizeExt(src)))
	if err := moveFile(src, dst); err != nil {
		return "", fmt.Errorf("moving file: %w", err)
	}

	return dst, nil
}

// normalizeExt lowercases the source extension and folds .jpg into .jpeg
func normalizeExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".jpg" {
		ext = ".jpeg"
	}
	return ext
}

// moveFile renames src to dst, falling back to copy and remove when the
// archive lives on a different filesystem than the inbox
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("closing destination: %w", err)
	}

	return os.Remove(src)
}
