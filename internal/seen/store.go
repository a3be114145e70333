// Package seen persists the journal of article identifiers already
// encountered, partitioned by source. The backing file is plain JSON so
// it stays human-diffable in the repository that schedules the runs.
package seen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/strazca-sk/monitor-dennikov/internal/logger"
)

// Journal maps a source name to the ordered identifiers seen from it.
// It only ever grows: identifiers are appended, never removed. Membership
// checks treat each sequence as a set.
type Journal map[string][]string

// EnsureSource guarantees the source has an entry, empty if new.
func (j Journal) EnsureSource(name string) {
	if _, ok := j[name]; !ok {
		j[name] = []string{}
	}
}

// Contains reports whether the identifier was already seen for the source.
func (j Journal) Contains(source, id string) bool {
	return slices.Contains(j[source], id)
}

// Mark records the identifier as seen for the source.
func (j Journal) Mark(source, id string) {
	j[source] = append(j[source], id)
}

// Store loads and saves the journal file.
//
// Single-writer only: two runs racing on the same file will lose updates.
// The scheduler is expected to serialize invocations.
type Store struct {
	path string
	log  logger.Logger
}

// NewStore builds a Store for the given journal file path.
func NewStore(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Store{path: path, log: log}
}

// Load reads the journal. A missing file means a first run and yields an
// empty journal. An unreadable or unparseable file is discarded with a
// warning and the run starts over; losing the journal at worst causes
// duplicate future alerts, never missed ones.
func (s *Store) Load() Journal {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Journal{}
	}
	if err != nil {
		s.log.WarnObj("seen journal unreadable, starting empty", "seen_reset", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return Journal{}
	}

	var j Journal
	if err := json.Unmarshal(raw, &j); err != nil {
		s.log.WarnObj("seen journal corrupted, starting empty", "seen_reset", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return Journal{}
	}
	if j == nil {
		j = Journal{}
	}
	return j
}

// Save writes the whole journal, replacing the file. HTML escaping is
// off so diacritics and URL query separators round-trip exactly as the
// feeds delivered them.
func (s *Store) Save(j Journal) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return fmt.Errorf("encode seen journal: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write seen journal: %w", err)
	}
	return nil
}
