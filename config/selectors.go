package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aluiziolira/go-scrape-products/extract"
)

// LoadSelectors reads a selector profile from a YAML file. Adapting to a
// changed page layout, or pointing the scraper at a second site, means
// supplying a new profile rather than touching extraction code.
func LoadSelectors(filePath string) (extract.Selectors, error) {
	var selectors extract.Selectors

	if filePath == "" {
		return selectors, fmt.Errorf("selectors file path is empty")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return selectors, fmt.Errorf("open selectors file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&selectors); err != nil {
		return selectors, fmt.Errorf("parse selectors file %q: %w", filePath, err)
	}

	if err := selectors.Validate(); err != nil {
		return selectors, fmt.Errorf("selectors file %q: %w", filePath, err)
	}

	return selectors, nil
}

// Selectors resolves the selector profile for this run: the YAML profile
// when one is configured, the built-in default otherwise.
func (c *Config) Selectors() (extract.Selectors, error) {
	if c.SelectorsFile == "" {
		return extract.DefaultSelectors(), nil
	}
	return LoadSelectors(c.SelectorsFile)
}
