// Package scraper fetches a search-results page and drives the run.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/aluiziolira/go-scrape-products/config"
	"github.com/aluiziolira/go-scrape-products/extract"
	"github.com/aluiziolira/go-scrape-products/models"
	"github.com/aluiziolira/go-scrape-products/pipeline"
)

// Scraper composes the run: one fetch, one extract, one save. Every stage
// is fail-fast; nothing is retried or recovered internally.
type Scraper struct {
	cfg       *config.Config
	fetcher   *Fetcher
	extractor *extract.Extractor
	Metrics   *Metrics

	// newWriter is called only after fetch and extract succeed, so a failed
	// fetch never touches the output file.
	newWriter func() (pipeline.OutputWriter, error)
}

// NewScraper builds a scraper instance configured from cfg.
func NewScraper(cfg *config.Config) (*Scraper, error) {
	parsed, err := url.Parse(cfg.SearchURL())
	if err != nil {
		return nil, fmt.Errorf("parse target url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("target url must include a host")
	}

	selectors, err := cfg.Selectors()
	if err != nil {
		return nil, err
	}

	metrics := NewMetrics()
	s := &Scraper{
		cfg:       cfg,
		fetcher:   NewFetcher(cfg, metrics),
		extractor: extract.NewExtractor(selectors),
		Metrics:   metrics,
	}
	s.newWriter = func() (pipeline.OutputWriter, error) {
		return pipeline.NewWriter(cfg.OutputFormat, cfg.OutputFile)
	}
	return s, nil
}

// Run executes the pipeline end-to-end for one page and one output file.
func (s *Scraper) Run(ctx context.Context) (*models.ScrapeResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	target := s.cfg.SearchURL()

	slog.Info("fetching page", slog.String("url", target))
	html, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	extracted, err := s.extractor.Extract(html)
	if err != nil {
		s.Metrics.IncError("parse")
		return nil, err
	}

	s.Metrics.AddListings(extracted.Listings)
	s.Metrics.AddProducts(len(extracted.Products))
	s.Metrics.AddSkipped(extracted.Skipped)

	if extracted.Listings == 0 {
		// An empty page and a stale container selector look identical here;
		// surface it so a layout change does not go unnoticed.
		slog.Warn("no listing containers matched",
			slog.String("url", target),
			slog.String("hint", "page may have no products or the container selector is stale"),
		)
	} else {
		slog.Info("extracted listings",
			slog.Int("listings", extracted.Listings),
			slog.Int("products", len(extracted.Products)),
			slog.Int("skipped", extracted.Skipped),
		)
	}

	writer, err := s.newWriter()
	if err != nil {
		s.Metrics.IncError("write")
		return nil, err
	}

	writeErr := writer.Write(extracted.Products)
	if closeErr := writer.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = writer.Validate()
	}
	if writeErr != nil {
		s.Metrics.IncError("write")
		return nil, writeErr
	}

	s.Metrics.AddRows(len(extracted.Products))

	return &models.ScrapeResult{
		StartTime:    start,
		EndTime:      time.Now(),
		URL:          target,
		ListingCount: extracted.Listings,
		ProductCount: len(extracted.Products),
		SkippedCount: extracted.Skipped,
		OutputFile:   s.cfg.OutputFile,
	}, nil
}
