// Package runner drives one monitoring pass: load the seen journal,
// walk every configured source, collect new keyword matches, persist the
// journal, record and announce the matches.
package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/strazca-sk/monitor-dennikov/internal/alertlog"
	"github.com/strazca-sk/monitor-dennikov/internal/config"
	"github.com/strazca-sk/monitor-dennikov/internal/domain"
	"github.com/strazca-sk/monitor-dennikov/internal/logger"
	"github.com/strazca-sk/monitor-dennikov/internal/match"
	"github.com/strazca-sk/monitor-dennikov/internal/notify"
	"github.com/strazca-sk/monitor-dennikov/internal/seen"
	"github.com/strazca-sk/monitor-dennikov/pkg/feeds"
)

const bannerStamp = "02.01.2006 15:04:05"

// Runner owns one pass over the configured sources. Collaborators are
// injected so tests can fabricate sources and feeds.
type Runner struct {
	cfg      config.Config
	fetcher  feeds.Fetcher
	store    *seen.Store
	alerts   *alertlog.Writer
	notifier notify.Notifier
	log      logger.Logger
	now      func() time.Time
}

// New wires a Runner from its collaborators. Nil fetcher, notifier and
// logger get working defaults; store and alerts are derived from the
// config when nil.
func New(cfg config.Config, fetcher feeds.Fetcher, store *seen.Store, alerts *alertlog.Writer, notifier notify.Notifier, log logger.Logger) *Runner {
	if log == nil {
		log = logger.NopLogger{}
	}
	if fetcher == nil {
		fetcher = feeds.NewFetcher(nil, log)
	}
	if store == nil {
		store = seen.NewStore(cfg.SeenFile, log)
	}
	if alerts == nil {
		alerts = alertlog.NewWriter(cfg.AlertLogFile, log)
	}
	if notifier == nil {
		notifier = notify.NewConsoleNotifier(nil)
	}
	return &Runner{
		cfg:      cfg,
		fetcher:  fetcher,
		store:    store,
		alerts:   alerts,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Run executes one full pass. Feed trouble is logged and survived; only
// journal-save and alert-append failures are returned, and they abort
// the run.
func (r *Runner) Run(ctx context.Context) error {
	runTime := r.now()

	r.log.Info(strings.Repeat("=", 80))
	r.log.Info(fmt.Sprintf("Starting newspaper monitoring, run time %s", runTime.Format(bannerStamp)))

	journal := r.store.Load()

	var allMatches []domain.Match
	for _, src := range r.cfg.Sources {
		journal.EnsureSource(src.Name)
		matches := r.processSource(ctx, src, journal)
		allMatches = append(allMatches, matches...)
	}

	if err := r.store.Save(journal); err != nil {
		return fmt.Errorf("persist seen journal: %w", err)
	}

	if len(allMatches) == 0 {
		r.log.Info("No new articles matching the keywords.")
		return nil
	}

	if err := r.alerts.Append(allMatches, runTime); err != nil {
		return fmt.Errorf("record alerts: %w", err)
	}

	subject := notify.Subject(r.cfg.SubjectPrefix, runTime, len(allMatches))
	body := notify.Render(allMatches, runTime)
	r.notifier.Notify(subject, body)

	r.log.Info("Done.")
	return nil
}

// processSource fetches one source and runs the dedup+match pipeline
// over its entries in feed order.
func (r *Runner) processSource(ctx context.Context, src domain.Source, journal seen.Journal) []domain.Match {
	r.log.InfoObj("processing source", "source_start", map[string]any{
		"source": src.Name,
		"url":    src.FeedURL,
	})

	result := r.fetcher.Fetch(ctx, src)

	if !result.WellFormed {
		r.log.WarnObj("feed is not well-formed, using recovered entries", "feed_malformed", map[string]any{
			"source":     src.Name,
			"diagnostic": result.Diagnostic,
			"recovered":  len(result.Entries),
		})
	}

	if len(result.Entries) == 0 {
		fields := map[string]any{"source": src.Name}
		if result.Diagnostic != "" {
			fields["diagnostic"] = result.Diagnostic
		}
		r.log.InfoObj("no entries in feed (or fetch failed)", "feed_empty", fields)
		return nil
	}

	keywords := match.Keywords(r.cfg.Keywords, src.ExtraKeywords)

	var matches []domain.Match
	for _, entry := range result.Entries {
		id := entry.Identifier()
		if id == "" {
			// Nothing to deduplicate or log against; drop it.
			continue
		}
		if journal.Contains(src.Name, id) {
			continue
		}

		// Marked seen before the keyword test on purpose: an article is
		// never re-evaluated in a future run, matching or not.
		journal.Mark(src.Name, id)

		if !match.Matches(entry, keywords) {
			continue
		}

		published := entry.Published
		if published == "" {
			published = entry.Updated
		}

		matches = append(matches, domain.Match{
			Source:    src.Name,
			Title:     strings.TrimSpace(entry.Title),
			Link:      entry.Link,
			Summary:   strings.TrimSpace(entry.Summary),
			Published: published,
		})
	}

	r.log.InfoObj("new matching articles", "source_done", map[string]any{
		"source":  src.Name,
		"matches": len(matches),
	})
	return matches
}
