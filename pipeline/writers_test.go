package pipeline

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aluiziolira/go-scrape-products/models"
)

var sampleProducts = []models.Product{
	{Name: "HP Pavilion 15", Price: "₹45,990", Rating: "4.3"},
	{Name: "Lenovo IdeaPad Slim 5", Price: "₹67,999", Rating: "4.5"},
	{Name: "ASUS VivoBook 14", Price: "₹38,990", Rating: "4.2"},
}

func writeCSV(t *testing.T, path string, products []models.Product) {
	t.Helper()

	writer, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("create csv writer: %v", err)
	}
	if err := writer.Write(products); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	trimmed := strings.TrimSuffix(string(data), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestCSVWriterHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	writeCSV(t, path, sampleProducts)

	lines := readLines(t, path)
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}
	if lines[0] != "Name,Price,Rating" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "HP Pavilion 15,\"₹45,990\",4.3" {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if lines[3] != "ASUS VivoBook 14,\"₹38,990\",4.2" {
		t.Fatalf("row 3 = %q", lines[3])
	}
}

func TestCSVWriterEmptyInputWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	writeCSV(t, path, nil)

	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if lines[0] != "Name,Price,Rating" {
		t.Fatalf("header = %q", lines[0])
	}
}

func TestCSVWriterIdempotent(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")

	writeCSV(t, first, sampleProducts)
	writeCSV(t, second, sampleProducts)

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read second: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("repeated saves differ:\n%q\n%q", a, b)
	}
}

func TestCSVWriterOverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	writeCSV(t, path, sampleProducts)
	writeCSV(t, path, sampleProducts[:1])

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2 after overwrite", len(lines))
	}
}

func TestCSVWriterOpenFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	// Parent "directory" is a regular file, so create must fail.
	_, err := NewCSVWriter(filepath.Join(blocker, "products.csv"))
	if err == nil {
		t.Fatalf("expected error for unwritable path")
	}
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("error = %T, want *WriteError", err)
	}
}

func TestJSONWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.jsonl")

	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("create json writer: %v", err)
	}
	if err := writer.Write(sampleProducts); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close json: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open json: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	count := 0
	for scanner.Scan() {
		var decoded models.Product
		if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid json line: %v", err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan json: %v", err)
	}
	if count != len(sampleProducts) {
		t.Fatalf("json lines = %d, want %d", count, len(sampleProducts))
	}
}

func TestDualWriterWrite(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "products.csv")
	jsonPath := filepath.Join(dir, "products.jsonl")

	writer, err := NewDualWriter(csvPath, jsonPath)
	if err != nil {
		t.Fatalf("create dual writer: %v", err)
	}
	if err := writer.Write(sampleProducts); err != nil {
		t.Fatalf("write dual: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close dual: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate dual: %v", err)
	}

	if lines := readLines(t, csvPath); len(lines) != 4 {
		t.Fatalf("csv lines = %d, want 4", len(lines))
	}
	if info, err := os.Stat(jsonPath); err != nil || info.Size() == 0 {
		t.Fatalf("json file missing or empty")
	}
}

func TestNewWriterUnknownFormat(t *testing.T) {
	if _, err := NewWriter("xml", filepath.Join(t.TempDir(), "out.xml")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
