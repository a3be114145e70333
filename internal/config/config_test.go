package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is t.Chdir from Go 1.24, reimplemented for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_DefaultsWithoutAnyFiles(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "seen_articles.json", cfg.SeenFile)
	assert.Equal(t, "alerts_log.csv", cfg.AlertLogFile)
	assert.Equal(t, "[MONITORING DENNIKY]", cfg.SubjectPrefix)
	assert.Len(t, cfg.Sources, 5)
	assert.Equal(t, "DennikN", cfg.Sources[0].Name)
	assert.NotEmpty(t, cfg.Keywords)
}

func TestLoad_EnvOverridesPaths(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONITOR_SEEN_FILE", "state/seen.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "state/seen.json", cfg.SeenFile)
}

func TestDefaultKeywords_CarryTheProductionListVerbatim(t *testing.T) {
	kws := DefaultKeywords()

	assert.Contains(t, kws, "pasy")
	assert.Contains(t, kws, "bezpečnosť")
	// The production list runs two literals together; reproduced as-is
	// until the config owner decides the intended terms.
	assert.Contains(t, kws, "šutaj eštokeštok")
	assert.NotContains(t, kws, "šutaj eštok")
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("valid registry with env expansion", func(t *testing.T) {
		t.Setenv("FEED_HOST", "https://example.sk")
		path := write("sources.yaml", `
sources:
  - name: Example
    feed_url: ${FEED_HOST}/rss
    extra_keywords: [hranica]
keywords: [pasy, doklady]
`)

		reg, err := LoadRegistry(path)
		require.NoError(t, err)
		require.Len(t, reg.Sources, 1)
		assert.Equal(t, "https://example.sk/rss", reg.Sources[0].FeedURL)
		assert.Equal(t, []string{"hranica"}, reg.Sources[0].ExtraKeywords)
		assert.Equal(t, []string{"pasy", "doklady"}, reg.Keywords)
	})

	t.Run("duplicate source name rejected", func(t *testing.T) {
		path := write("dup.yaml", `
sources:
  - {name: SME, feed_url: https://a.sk/rss}
  - {name: SME, feed_url: https://b.sk/rss}
`)

		_, err := LoadRegistry(path)
		assert.ErrorContains(t, err, `duplicate source name "SME"`)
	})

	t.Run("empty feed url rejected", func(t *testing.T) {
		path := write("nourl.yaml", `
sources:
  - {name: SME, feed_url: ""}
`)

		_, err := LoadRegistry(path)
		assert.ErrorContains(t, err, "feed_url is empty")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadRegistry(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("no sources is an error", func(t *testing.T) {
		path := write("empty.yaml", "keywords: [pasy]\n")

		_, err := LoadRegistry(path)
		assert.ErrorContains(t, err, "no sources")
	})
}
