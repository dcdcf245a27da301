package scraper

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/aluiziolira/go-scrape-products/config"
)

// Fetcher retrieves a single page per call through a colly collector. Each
// call issues exactly one request and then blocks for the configured delay
// before returning, throttling how often the target sees us.
type Fetcher struct {
	cfg       *config.Config
	collector *colly.Collector

	// sleep implements the post-fetch throttling pause. Tests substitute a
	// recorder so the pause is asserted without wall-clock cost.
	sleep   func(ctx context.Context, d time.Duration)
	metrics *Metrics
}

// NewFetcher builds a fetcher configured from cfg.
func NewFetcher(cfg *config.Config, metrics *Metrics) *Fetcher {
	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)

	collector.SetRequestTimeout(cfg.Timeout)
	collector.IgnoreRobotsTxt = true
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	return &Fetcher{
		cfg:       cfg,
		collector: collector,
		sleep:     sleepWithContext,
		metrics:   metrics,
	}
}

// Fetch issues one GET for pageURL and returns the response body as text,
// regardless of declared content-type. Network failures, timeouts and
// non-success statuses come back as *FetchError with the classified cause;
// nothing is retried here. The throttling pause applies on failure paths
// too, and no second request is ever issued within a single call.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}

	// Clone shares the transport but gives this call its own handlers, so
	// per-call state never leaks between fetches.
	c := f.collector.Clone()

	var (
		body       []byte
		statusCode int
		fetchErr   error
	)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", f.cfg.Accept)
		r.Headers.Set("Accept-Language", f.cfg.AcceptLanguage)
	})
	c.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			statusCode = r.StatusCode
		}
		fetchErr = classifyError(err, statusCode)
	})

	f.metrics.IncRequest()
	start := time.Now()
	visitErr := c.Visit(pageURL)
	c.Wait()
	f.metrics.ObserveFetch(time.Since(start))

	f.sleep(ctx, f.cfg.Delay)

	if fetchErr != nil {
		f.metrics.IncError(errorTypeLabel(fetchErr))
		return "", &FetchError{URL: pageURL, StatusCode: statusCode, Err: fetchErr}
	}
	if visitErr != nil {
		classified := classifyError(visitErr, 0)
		f.metrics.IncError(errorTypeLabel(classified))
		return "", &FetchError{URL: pageURL, Err: classified}
	}

	return string(body), nil
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
