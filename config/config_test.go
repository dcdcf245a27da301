package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "empty base url",
			mutate: func(cfg *Config) {
				cfg.BaseURL = ""
			},
			wantErr: "base URL",
		},
		{
			name: "empty query",
			mutate: func(cfg *Config) {
				cfg.Query = ""
			},
			wantErr: "query",
		},
		{
			name: "target url without host",
			mutate: func(cfg *Config) {
				cfg.TargetURL = "http://"
			},
			wantErr: "target URL",
		},
		{
			name: "negative delay",
			mutate: func(cfg *Config) {
				cfg.Delay = -1 * time.Second
			},
			wantErr: "delay",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "empty output file",
			mutate: func(cfg *Config) {
				cfg.OutputFile = ""
			},
			wantErr: "output file",
		},
		{
			name: "unknown output format",
			mutate: func(cfg *Config) {
				cfg.OutputFormat = "xml"
			},
			wantErr: "output format",
		},
		{
			name: "empty user agent",
			mutate: func(cfg *Config) {
				cfg.UserAgent = ""
			},
			wantErr: "user agent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestSearchURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://example.test/search"
	cfg.Query = "gaming laptops"
	if got, want := cfg.SearchURL(), "https://example.test/search?q=gaming+laptops"; got != want {
		t.Fatalf("SearchURL() = %q, want %q", got, want)
	}

	cfg.TargetURL = "https://example.test/custom?page=2"
	if got := cfg.SearchURL(); got != cfg.TargetURL {
		t.Fatalf("SearchURL() = %q, want explicit target %q", got, cfg.TargetURL)
	}
}

func TestLoadSelectors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	content := "container: div.listing\nname: h2.title\nprice: span.price\nrating: span.stars\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write selectors file: %v", err)
	}

	selectors, err := LoadSelectors(path)
	if err != nil {
		t.Fatalf("load selectors: %v", err)
	}
	if selectors.Container != "div.listing" {
		t.Fatalf("container = %q, want %q", selectors.Container, "div.listing")
	}
	if selectors.Rating != "span.stars" {
		t.Fatalf("rating = %q, want %q", selectors.Rating, "span.stars")
	}
}

func TestLoadSelectorsRejectsIncompleteProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	content := "container: div.listing\nname: h2.title\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write selectors file: %v", err)
	}

	if _, err := LoadSelectors(path); err == nil || !strings.Contains(err.Error(), "price") {
		t.Fatalf("expected missing-price error, got %v", err)
	}
}

func TestLoadSelectorsMissingFile(t *testing.T) {
	if _, err := LoadSelectors(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
