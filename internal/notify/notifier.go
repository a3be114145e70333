// Package notify renders the human-readable run summary. The console
// notifier is a stand-in for email delivery: it prints the framed block
// the operators read in the scheduler's log and nothing leaves the host.
package notify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/strazca-sk/monitor-dennikov/internal/domain"
)

const (
	subjectStamp = "02.01.2006 15:04"
	bodyStamp    = "02.01.2006 15:04:05"
)

// Notifier is the terminal sink for the rendered summary.
type Notifier interface {
	Notify(subject, body string)
}

// ConsoleNotifier prints the notification block to a writer, stdout by
// default. It always succeeds.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier builds a ConsoleNotifier writing to out; nil means
// stdout.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out}
}

// Notify prints the framed notification block.
func (n *ConsoleNotifier) Notify(subject, body string) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(n.out)
	fmt.Fprintln(n.out, rule)
	fmt.Fprintln(n.out, "NOTIFIKÁCIA (len log, e-mail sa neposiela)")
	fmt.Fprintln(n.out, "PREDMET:", subject)
	fmt.Fprintln(n.out, strings.Repeat("-", 80))
	fmt.Fprintln(n.out, body)
	fmt.Fprintln(n.out, rule)
	fmt.Fprintln(n.out)
}

// Subject assembles the notification subject line.
func Subject(prefix string, runTime time.Time, matchCount int) string {
	return fmt.Sprintf("%s %s – %d článkov", prefix, runTime.Format(subjectStamp), matchCount)
}

// Render builds the email-shaped body listing every match.
func Render(matches []domain.Match, runTime time.Time) string {
	var lines []string

	lines = append(lines, "Monitoring denníkov – nové články s vybranými kľúčovými slovami")
	lines = append(lines, fmt.Sprintf("Čas spustenia: %s", runTime.Format(bodyStamp)))
	lines = append(lines, "")

	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("Zdroj: %s", m.Source))
		lines = append(lines, fmt.Sprintf("Názov: %s", m.Title))
		if m.Published != "" {
			lines = append(lines, fmt.Sprintf("Publikované: %s", m.Published))
		}
		lines = append(lines, fmt.Sprintf("Link: %s", m.Link))
		if m.Summary != "" {
			lines = append(lines, "")
			lines = append(lines, "Perex / zhrnutie:")
			lines = append(lines, summaryText(m.Summary))
		}
		lines = append(lines, strings.Repeat("-", 80))
	}

	return strings.Join(lines, "\n")
}

// summaryText strips HTML markup from a feed summary for display. Feeds
// routinely ship perex text wrapped in markup; matching runs on the raw
// text, only the rendering is cleaned. Unparseable input is shown as-is.
func summaryText(raw string) string {
	if !strings.Contains(raw, "<") {
		return strings.TrimSpace(raw)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}

	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return strings.TrimSpace(raw)
	}
	return text
}
