// Package report renders a finished session's outputs to Markdown or JSON
// and parses those files back for viewing.
package report

import (
	"time"

	"github.com/worklens/worklens/internal/tracker"
)

// Report is the complete, renderable record of one tracking session.
type Report struct {
	Session SessionMeta    `json:"session"`
	Result  tracker.Result `json:"result"`
}

// SessionMeta holds summary metadata about the session.
type SessionMeta struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	StartTime time.Time `json:"start_time"`
	StopTime  time.Time `json:"stop_time"`
	Duration  string    `json:"duration"` // human-readable, e.g. "2h15m"
}
