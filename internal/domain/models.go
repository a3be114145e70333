package domain

// Domain contains core models shared across the monitor pipeline.

// Source is one monitored news outlet. Static for the whole run.
type Source struct {
	Name          string
	FeedURL       string
	ExtraKeywords []string
}

// Entry is one article record extracted from a fetched feed.
// Published and Updated carry the feed's raw timestamp strings.
type Entry struct {
	Title     string
	Summary   string
	Link      string
	GUID      string
	Published string
	Updated   string
}

// FetchResult is the outcome of fetching and parsing one source's feed.
// WellFormed is false when the document failed strict parsing, even if
// entries were still recovered; Diagnostic then describes the problem.
type FetchResult struct {
	Entries    []Entry
	WellFormed bool
	Diagnostic string
}

// Match is a newly seen entry that satisfied the keyword filter. It is
// created during a run, appended to the alert log and rendered in the
// notification, and never read back by the program.
type Match struct {
	Source    string
	Title     string
	Link      string
	Summary   string
	Published string
}

// Identifier returns the deduplication identifier for the entry: link,
// else feed-provided id, else title. Empty means the entry cannot be
// deduplicated and must be skipped.
func (e Entry) Identifier() string {
	if e.Link != "" {
		return e.Link
	}
	if e.GUID != "" {
		return e.GUID
	}
	return e.Title
}
