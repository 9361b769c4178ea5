package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianp07/quote-genie/core/model"
)

// WriteFile writes the records to path in the format implied by its
// extension (.csv, .json or .xlsx). The target only appears once it is
// complete; on failure no file is left behind.
func WriteFile(path string, recs []model.QuoteRecord) error {
	var enc func(io.Writer, []model.QuoteRecord) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		enc = WriteCSV
	case ".json":
		enc = WriteJSON
	case ".xlsx":
		enc = WriteXLSX
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return WriteAtomic(path, func(w io.Writer) error { return enc(w, recs) })
}

// ReadFile loads records written by WriteFile in CSV or JSON format.
func ReadFile(path string) ([]model.QuoteRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".json":
		return ReadJSON(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// WriteAtomic creates path's directory if needed, streams write into a
// temporary sibling file and renames it over path once synced and closed.
func WriteAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
