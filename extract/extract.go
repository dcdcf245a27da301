// Package extract locates product listings in search-results HTML.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aluiziolira/go-scrape-products/models"
)

// Selectors names the CSS selectors that bind the extractor to one site
// layout. The container selector matches one element per listing; the field
// selectors are evaluated inside each container. These class names are the
// most fragile part of the system: when the target site ships new markup the
// container selector matches nothing and the run produces an empty result.
type Selectors struct {
	Container string `yaml:"container"`
	Name      string `yaml:"name"`
	Price     string `yaml:"price"`
	Rating    string `yaml:"rating"`
}

// DefaultSelectors returns the profile for Flipkart search results.
func DefaultSelectors() Selectors {
	return Selectors{
		Container: "div.tUxRFH",
		Name:      "div.KzDlHZ",
		Price:     "div.Nx9bqj._4b5DiR",
		Rating:    "div.XQDdHH",
	}
}

// Validate ensures no selector is missing from a profile.
func (s Selectors) Validate() error {
	if strings.TrimSpace(s.Container) == "" {
		return fmt.Errorf("container selector cannot be empty")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name selector cannot be empty")
	}
	if strings.TrimSpace(s.Price) == "" {
		return fmt.Errorf("price selector cannot be empty")
	}
	if strings.TrimSpace(s.Rating) == "" {
		return fmt.Errorf("rating selector cannot be empty")
	}
	return nil
}

// ParseError indicates the HTML could not be parsed into a document at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Errorf("parse html: %w", e.Err).Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Result carries the extracted records plus the counts the run summary and
// metrics report. Skipped counts listings dropped for missing fields.
type Result struct {
	Products []models.Product
	Listings int
	Skipped  int
}

// Extractor turns raw HTML into product records using a selector profile.
type Extractor struct {
	selectors Selectors
}

// NewExtractor builds an extractor for the given selector profile.
func NewExtractor(selectors Selectors) *Extractor {
	return &Extractor{selectors: selectors}
}

// Extract parses html and returns one record per listing that carries all
// three fields. Listings missing a field are skipped, never padded with
// placeholders. Zero matched containers is not an error; from here it is
// indistinguishable from a stale container selector.
func (ex *Extractor) Extract(html string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	result := &Result{}
	doc.Find(ex.selectors.Container).Each(func(i int, sel *goquery.Selection) {
		result.Listings++

		name := strings.TrimSpace(sel.Find(ex.selectors.Name).First().Text())
		price := strings.TrimSpace(sel.Find(ex.selectors.Price).First().Text())
		rating := strings.TrimSpace(sel.Find(ex.selectors.Rating).First().Text())

		if missing := firstMissing(name, price, rating); missing != "" {
			result.Skipped++
			slog.Warn("skipping incomplete listing",
				slog.Int("listing", i),
				slog.String("missing", missing),
			)
			return
		}

		result.Products = append(result.Products, models.Product{
			Name:   name,
			Price:  price,
			Rating: rating,
		})
	})

	return result, nil
}

func firstMissing(name, price, rating string) string {
	switch {
	case name == "":
		return "name"
	case price == "":
		return "price"
	case rating == "":
		return "rating"
	}
	return ""
}
