package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"bondwatch/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// UnitFetcher extracts the available-unit limit from a bond detail
// page. The bool is false when the page has no recognizable unit
// count; that is a data condition, not an error.
type UnitFetcher interface {
	FetchUnitLimit(ctx context.Context, url string) (int, bool, error)
}

// unitSelectors is the ordered fallback chain for locating the unit
// quantity input. The site occasionally reshuffles its markup, so we
// try the most specific selector first and widen from there.
var unitSelectors = []string{
	"input.unit-selector-input[type='number']",
	"aside input[type='number']",
	"input[type='number'][inputmode='numeric']",
}

// PageFetcher fetches bond pages over HTTP and reads the max attribute
// of the unit-selector input.
type PageFetcher struct {
	http *resty.Client
}

func NewPageFetcher(cfg config.ScrapeConfig) *PageFetcher {
	httpClient := resty.New().SetTimeout(cfg.Timeout)
	if cfg.UserAgent != "" {
		httpClient.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &PageFetcher{http: httpClient}
}

func (f *PageFetcher) FetchUnitLimit(ctx context.Context, url string) (int, bool, error) {
	resp, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return 0, false, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return 0, false, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return 0, false, fmt.Errorf("parse %s: %w", url, err)
	}

	for _, selector := range unitSelectors {
		input := doc.Find(selector).First()
		if input.Length() == 0 {
			continue
		}

		maxAttr, exists := input.Attr("max")
		if !exists {
			continue
		}
		limit, err := strconv.Atoi(maxAttr)
		if err != nil {
			continue
		}
		return limit, true, nil
	}

	return 0, false, nil
}
