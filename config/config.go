package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds scraper configuration.
type Config struct {
	BaseURL        string
	Query          string
	TargetURL      string // optional; overrides BaseURL+Query when set
	Delay          time.Duration
	Timeout        time.Duration
	UserAgent      string
	Accept         string
	AcceptLanguage string
	OutputFile     string
	OutputFormat   string // csv, json, or dual
	SelectorsFile  string // optional YAML selector profile
	MetricsAddr    string
	LogFile        string
	Verbose        bool
}

// DefaultConfig returns conservative defaults for the current target.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://www.flipkart.com/search",
		Query:          "laptops",
		Delay:          2 * time.Second,
		Timeout:        10 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
		AcceptLanguage: "en-US,en;q=0.9",
		OutputFile:     "output/products.csv",
		OutputFormat:   "csv",
	}
}

// SearchURL returns the page to fetch: the explicit target URL when set,
// otherwise the base search URL with the query appended.
func (c *Config) SearchURL() string {
	if c.TargetURL != "" {
		return c.TargetURL
	}
	return c.BaseURL + "?q=" + url.QueryEscape(c.Query)
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.TargetURL == "" {
		if c.BaseURL == "" {
			return fmt.Errorf("base URL cannot be empty")
		}
		if c.Query == "" {
			return fmt.Errorf("query cannot be empty")
		}
	}

	parsedURL, err := url.Parse(c.SearchURL())
	if err != nil {
		return fmt.Errorf("invalid target URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("target URL must include a host")
	}

	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	return nil
}

// EnvString reads a string environment variable, reporting whether it was set.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EnvInt reads an integer environment variable.
func EnvInt(key string) (int, bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return value, true, nil
}
