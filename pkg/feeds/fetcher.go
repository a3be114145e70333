// Package feeds fetches and parses RSS/Atom documents for the monitor.
// Parsing is best effort: real-world feeds are frequently not valid XML
// and a broken document must never abort the run.
package feeds

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/strazca-sk/monitor-dennikov/internal/domain"
	"github.com/strazca-sk/monitor-dennikov/internal/logger"
	"github.com/strazca-sk/monitor-dennikov/pkg/httpclient"
)

const defaultTimeout = 15 * time.Second

var defaultHeaders = map[string]string{
	"User-Agent": "monitor-dennikov/1.0 (+https://github.com/strazca-sk/monitor-dennikov)",
	"Accept":     "application/rss+xml, application/atom+xml, application/xml, text/xml",
}

// Fetcher retrieves one source's feed and maps it to domain entries.
type Fetcher interface {
	Fetch(ctx context.Context, src domain.Source) domain.FetchResult
}

type rssFetcher struct {
	client httpclient.Client
	parser *gofeed.Parser
	log    logger.Logger
}

// DefaultHTTPClient returns the tuned client used for feed fetches.
func DefaultHTTPClient() httpclient.Client {
	return httpclient.NewRestyClient(defaultTimeout)
}

// NewFetcher builds the RSS fetcher with the given HTTP client and logger.
func NewFetcher(client httpclient.Client, log logger.Logger) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &rssFetcher{
		client: client,
		parser: gofeed.NewParser(),
		log:    log,
	}
}

// Fetch retrieves and parses the source's feed. Transport errors and
// non-200 responses yield an empty result with a diagnostic; a document
// that fails strict parsing gets one salvage pass before giving up.
// Fetch never returns an error: feed trouble is the caller's notice to
// log, not a reason to stop the run.
func (f *rssFetcher) Fetch(ctx context.Context, src domain.Source) domain.FetchResult {
	f.log.DebugObj("fetching feed", "fetch_start", map[string]any{
		"source": src.Name,
		"url":    src.FeedURL,
	})

	resp, err := f.client.Get(ctx, src.FeedURL, defaultHeaders)
	if err != nil {
		return domain.FetchResult{
			WellFormed: true,
			Diagnostic: fmt.Sprintf("fetch %s: %v", src.Name, err),
		}
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return domain.FetchResult{
			WellFormed: true,
			Diagnostic: fmt.Sprintf("%s returned status %d body: %s", src.Name, resp.StatusCode(), responseSnippet(body)),
		}
	}

	feed, err := f.parser.Parse(bytes.NewReader(body))
	if err == nil {
		return domain.FetchResult{Entries: mapEntries(feed), WellFormed: true}
	}

	diagnostic := fmt.Sprintf("parse %s feed: %v", src.Name, err)

	// Salvage pass: strip control characters that are illegal in XML and
	// reparse. Covers the common stray-control-byte-in-CDATA breakage.
	feed, retryErr := f.parser.Parse(bytes.NewReader(stripIllegalXML(body)))
	if retryErr != nil {
		return domain.FetchResult{WellFormed: false, Diagnostic: diagnostic}
	}

	return domain.FetchResult{
		Entries:    mapEntries(feed),
		WellFormed: false,
		Diagnostic: diagnostic,
	}
}

// mapEntries converts gofeed items into domain entries, keeping feed order.
func mapEntries(feed *gofeed.Feed) []domain.Entry {
	if feed == nil || len(feed.Items) == 0 {
		return nil
	}

	entries := make([]domain.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		entries = append(entries, domain.Entry{
			Title:     item.Title,
			Summary:   summary,
			Link:      item.Link,
			GUID:      item.GUID,
			Published: item.Published,
			Updated:   item.Updated,
		})
	}
	return entries
}

// stripIllegalXML removes control characters XML 1.0 forbids, keeping
// tab, newline and carriage return.
func stripIllegalXML(body []byte) []byte {
	return bytes.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, body)
}

// responseSnippet returns a truncated snippet of the response body for
// diagnostics.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
