// Package pipeline provides the output writers for extracted records.
package pipeline

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aluiziolira/go-scrape-products/models"
)

// OutputWriter defines the interface for data output.
type OutputWriter interface {
	Write(products []models.Product) error
	Close() error
	Validate() error
}

// WriteError indicates a filesystem-level failure during save.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Errorf("write %s: %w", e.Path, e.Err).Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriter builds the writer for an output format. The dual format derives
// the JSON path from the CSV path.
func NewWriter(format, filename string) (OutputWriter, error) {
	switch format {
	case "json":
		return NewJSONWriter(filename)
	case "csv":
		return NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".json"
		return NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// CSVWriter writes records to CSV.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the output file and writes the header
// row. The header is written even when no records follow.
func NewCSVWriter(filename string) (*CSVWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, &WriteError{Path: filename, Err: err}
	}

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"Name", "Price", "Rating"}); err != nil {
		f.Close()
		return nil, &WriteError{Path: filename, Err: err}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return nil, &WriteError{Path: filename, Err: err}
	}

	return &CSVWriter{
		path:   filename,
		file:   f,
		writer: writer,
	}, nil
}

// Write appends records in input order. Field contents pass through
// verbatim; currency symbols and thousand separators are not normalized.
func (cw *CSVWriter) Write(products []models.Product) error {
	for _, p := range products {
		if err := cw.writer.Write([]string{p.Name, p.Price, p.Rating}); err != nil {
			return &WriteError{Path: cw.path, Err: err}
		}
	}
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		return &WriteError{Path: cw.path, Err: err}
	}
	return nil
}

// Close flushes and closes the file handle.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	if err := cw.writer.Error(); err != nil {
		cw.file.Close()
		return &WriteError{Path: cw.path, Err: err}
	}
	if err := cw.file.Close(); err != nil {
		return &WriteError{Path: cw.path, Err: err}
	}
	return nil
}

// Validate ensures the file holds at least the header row.
func (cw *CSVWriter) Validate() error {
	info, err := os.Stat(cw.path)
	if err != nil {
		return &WriteError{Path: cw.path, Err: err}
	}
	if info.Size() <= 0 {
		return &WriteError{Path: cw.path, Err: fmt.Errorf("csv file is empty")}
	}
	return nil
}

// JSONWriter writes newline-delimited JSON records.
type JSONWriter struct {
	path    string
	file    *os.File
	writer  *bufio.Writer
	encoder *json.Encoder
}

// NewJSONWriter initialises the JSON writer.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, &WriteError{Path: filename, Err: err}
	}

	buffer := bufio.NewWriter(f)
	return &JSONWriter{
		path:    filename,
		file:    f,
		writer:  buffer,
		encoder: json.NewEncoder(buffer),
	}, nil
}

// Write appends records in JSONL format.
func (jw *JSONWriter) Write(products []models.Product) error {
	for _, p := range products {
		if err := jw.encoder.Encode(p); err != nil {
			return &WriteError{Path: jw.path, Err: err}
		}
	}
	if err := jw.writer.Flush(); err != nil {
		return &WriteError{Path: jw.path, Err: err}
	}
	return nil
}

// Close flushes buffers and closes the underlying file.
func (jw *JSONWriter) Close() error {
	if err := jw.writer.Flush(); err != nil {
		jw.file.Close()
		return &WriteError{Path: jw.path, Err: err}
	}
	if err := jw.file.Close(); err != nil {
		return &WriteError{Path: jw.path, Err: err}
	}
	return nil
}

// Validate ensures the JSON file exists on disk.
func (jw *JSONWriter) Validate() error {
	if _, err := os.Stat(jw.path); err != nil {
		return &WriteError{Path: jw.path, Err: err}
	}
	return nil
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: filename, Err: err}
	}
	return nil
}
