// Command monitor runs one monitoring pass over the configured news
// feeds and exits. Scheduling is external (cron / CI workflow).
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/strazca-sk/monitor-dennikov/internal/config"
	"github.com/strazca-sk/monitor-dennikov/internal/logger"
	"github.com/strazca-sk/monitor-dennikov/internal/runner"
	"github.com/strazca-sk/monitor-dennikov/pkg/feeds"
	"github.com/strazca-sk/monitor-dennikov/pkg/httpclient"
)

func main() {
	// Optional; the defaults work without any environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	client := httpclient.NewRestyClient(cfg.HTTPTimeout)
	fetcher := feeds.NewFetcher(client, zl)

	r := runner.New(cfg, fetcher, nil, nil, nil, zl)
	if err := r.Run(context.Background()); err != nil {
		zl.WarnObj("run aborted", "run_failed", map[string]any{"error": err.Error()})
		log.Fatalf("monitoring run failed: %v", err)
	}
}
