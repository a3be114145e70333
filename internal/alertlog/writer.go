// Package alertlog appends matched articles to the durable alert record.
// The file is semicolon-delimited text with a fixed five-column header,
// append-only so the full alert history survives across runs.
package alertlog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/strazca-sk/monitor-dennikov/internal/domain"
	"github.com/strazca-sk/monitor-dennikov/internal/logger"
)

const (
	header    = "run_time;source;published;title;link\n"
	timeStamp = "02.01.2006 15:04:05"
)

// Writer appends match records to the alert log file.
type Writer struct {
	path string
	log  logger.Logger
}

// NewWriter builds a Writer for the given alert log path.
func NewWriter(path string, log logger.Logger) *Writer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Writer{path: path, log: log}
}

// Append writes one record per match, all stamped with runTime. On the
// first-ever write the header is emitted too. Write failures propagate;
// the alert record is the one artifact the run must not lose silently.
func (w *Writer) Append(matches []domain.Match, runTime time.Time) error {
	if len(matches) == 0 {
		return nil
	}

	_, statErr := os.Stat(w.path)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("stat alert log: %w", statErr)
	}

	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open alert log: %w", err)
	}
	defer file.Close()

	var sb strings.Builder
	if !exists {
		sb.WriteString(header)
	}

	stamp := runTime.Format(timeStamp)
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("%s;%s;%s;%s;%s\n",
			stamp,
			sanitize(m.Source),
			sanitize(m.Published),
			sanitize(m.Title),
			sanitize(m.Link),
		))
	}

	if _, err := file.WriteString(sb.String()); err != nil {
		return fmt.Errorf("append alert log: %w", err)
	}

	w.log.InfoObj("alerts appended", "alerts_written", map[string]any{
		"path":  w.path,
		"count": len(matches),
	})
	return nil
}

// sanitize replaces the column delimiter inside free text with a comma
// so every record keeps exactly five columns. The data is kept, only the
// delimiter changes.
func sanitize(field string) string {
	return strings.ReplaceAll(field, ";", ",")
}
