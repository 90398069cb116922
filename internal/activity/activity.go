// Package activity classifies, segments and aggregates foreground-window
// samples into a per-session activity log.
package activity

import "time"

// Sample is one observation of the focused window. Samples are transient;
// only the segments they open or close are retained.
type Sample struct {
	App        string    `json:"app"`
	Title      string    `json:"title"`
	ObservedAt time.Time `json:"observed_at"`
}

// Entry is one closed activity segment. Entries are immutable once created
// and are appended to the session log in the order segments close.
type Entry struct {
	App             string    `json:"app"`
	Title           string    `json:"title"`
	File            string    `json:"file,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
	Relevant        bool      `json:"relevant"`
}

// AppSummary is the per-application rollup computed at session stop.
// Files and Titles are deduplicated in first-seen order.
type AppSummary struct {
	App                  string   `json:"app"`
	TotalDurationSeconds int      `json:"total_duration_seconds"`
	Files                []string `json:"files"`
	Titles               []string `json:"titles"`
}

// FilterRelevant returns the entries classified as work activity.
// The result is always non-nil so callers can marshal it as [] rather
// than null.
func FilterRelevant(entries []Entry) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Relevant {
			result = append(result, e)
		}
	}
	return result
}
