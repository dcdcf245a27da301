// Package models defines data structures for the scraper.
package models

import "time"

// Product is one listing extracted from a search-results page. Field
// contents are kept verbatim as they appear on the page: Price keeps its
// currency symbol and thousand separators, Rating stays a numeric string.
type Product struct {
	Name   string `csv:"name" json:"name"`
	Price  string `csv:"price" json:"price"`
	Rating string `csv:"rating" json:"rating"`
}

// ScrapeResult holds the overall result of one run.
type ScrapeResult struct {
	StartTime    time.Time
	EndTime      time.Time
	URL          string
	ListingCount int // listing containers matched in the HTML
	ProductCount int // records extracted and written
	SkippedCount int // listings dropped for missing fields
	OutputFile   string
}
