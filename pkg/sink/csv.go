package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives the header once, then rows in order. Implementations must
// preserve row order and never reorder or deduplicate.
type Sink interface {
	WriteHeader(header []string) error
	AppendRows(rows [][]string) error
}

// CSV writes the sample stream to a single delimited file. It owns the file
// handle exclusively; the header fixes the column count every later row is
// checked against.
type CSV struct {
	f    *os.File
	w    *csv.Writer
	cols int
}

// NewCSV creates (or truncates) the output file, creating parent directories
// as needed.
func NewCSV(path string) (*CSV, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return &CSV{f: f, w: csv.NewWriter(f)}, nil
}

// WriteHeader writes the column header. Must be called exactly once, before
// any rows.
func (c *CSV) WriteHeader(header []string) error {
	if c.cols != 0 {
		return ErrHeaderWritten
	}
	if err := c.w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("flush header: %w", err)
	}
	c.cols = len(header)
	return nil
}

// AppendRows appends rows in receipt order and flushes them to the file.
func (c *CSV) AppendRows(rows [][]string) error {
	if c.cols == 0 {
		return ErrNoHeader
	}
	for _, row := range rows {
		if len(row) != c.cols {
			return fmt.Errorf("%w: got %d, header has %d", ErrColumnCount, len(row), c.cols)
		}
		if err := c.w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	return nil
}

// Name returns the output file path.
func (c *CSV) Name() string { return c.f.Name() }

// Close flushes pending writes and closes the file.
func (c *CSV) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		_ = c.f.Close()
		return err
	}
	return c.f.Close()
}
