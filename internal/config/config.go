package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/strazca-sk/monitor-dennikov/internal/domain"
)

// Config holds everything one run needs. It is assembled at process
// start and never mutated afterwards.
type Config struct {
	SeenFile      string
	AlertLogFile  string
	SubjectPrefix string
	LogLevel      string
	HTTPTimeout   time.Duration

	// SourcesFile optionally points at a YAML registry overriding the
	// compiled-in sources and keywords.
	SourcesFile string

	Sources  []domain.Source
	Keywords []string
}

// Load reads run settings from an optional monitor.yaml and MONITOR_*
// environment variables, then resolves the source registry. A missing
// settings file is fine; a registry file that exists but fails to load
// is not.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("seen_file", "seen_articles.json")
	v.SetDefault("alert_log_file", "alerts_log.csv")
	v.SetDefault("subject_prefix", "[MONITORING DENNIKY]")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_timeout", "15s")
	v.SetDefault("sources_file", "")

	v.SetConfigName("monitor")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MONITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read monitor config: %w", err)
		}
	}

	cfg := Config{
		SeenFile:      v.GetString("seen_file"),
		AlertLogFile:  v.GetString("alert_log_file"),
		SubjectPrefix: v.GetString("subject_prefix"),
		LogLevel:      v.GetString("log_level"),
		HTTPTimeout:   v.GetDuration("http_timeout"),
		SourcesFile:   v.GetString("sources_file"),
	}

	if cfg.SourcesFile != "" {
		reg, err := LoadRegistry(cfg.SourcesFile)
		if err != nil {
			return Config{}, fmt.Errorf("load source registry: %w", err)
		}
		cfg.Sources = reg.Sources
		cfg.Keywords = reg.Keywords
	} else {
		cfg.Sources = DefaultSources()
		cfg.Keywords = DefaultKeywords()
	}

	return cfg, nil
}
