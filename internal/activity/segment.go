package activity

import (
	"strings"
	"time"
)

// MatchPolicy controls when an incoming sample continues the open segment.
//
// The exact-title policy mirrors how most trackers behave, but it fragments
// activities whose titles mutate cosmetically (a terminal prompt updating
// every second). The policy is therefore explicit and configurable rather
// than baked in.
type MatchPolicy int

const (
	// MatchExact requires app and title to be byte-identical.
	MatchExact MatchPolicy = iota
	// MatchAppOnly ignores title changes within the same application.
	MatchAppOnly
	// MatchNormalizedTitle compares titles case-insensitively with
	// whitespace collapsed.
	MatchNormalizedTitle
)

// ParseMatchPolicy maps a config string to a MatchPolicy.
// Unrecognized values fall back to MatchExact.
func ParseMatchPolicy(s string) MatchPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "app":
		return MatchAppOnly
	case "title-normalized":
		return MatchNormalizedTitle
	default:
		return MatchExact
	}
}

// OpenSegment is the single activity segment currently being observed.
// It is owned exclusively by the Segmenter and becomes an Entry when the
// focused window changes or the session stops.
type OpenSegment struct {
	App       string    `json:"app"`
	Title     string    `json:"title"`
	StartedAt time.Time `json:"started_at"`
	Relevant  bool      `json:"relevant"`
}

// ElapsedSeconds is the segment's live duration for reporting purposes.
func (s OpenSegment) ElapsedSeconds(now time.Time) int {
	d := int(now.Sub(s.StartedAt) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// Segmenter turns the continuous sample stream into discrete timed entries.
// At any instant there is zero or one open segment.
type Segmenter struct {
	policy MatchPolicy
	open   *OpenSegment
	log    []Entry
}

// NewSegmenter returns an empty Segmenter with the given match policy.
func NewSegmenter(policy MatchPolicy) *Segmenter {
	return &Segmenter{policy: policy}
}

// Observe feeds one sample into the state machine. If the sample closes the
// open segment, the resulting Entry is appended to the log and returned;
// otherwise Observe returns nil. Zero-duration transitions produce no entry.
func (s *Segmenter) Observe(sample Sample, relevant bool) *Entry {
	if s.open == nil {
		s.open = &OpenSegment{
			App:       sample.App,
			Title:     sample.Title,
			StartedAt: sample.ObservedAt,
			Relevant:  relevant,
		}
		return nil
	}

	if s.matches(sample) {
		return nil
	}

	closed := s.close(sample.ObservedAt)
	s.open = &OpenSegment{
		App:       sample.App,
		Title:     sample.Title,
		StartedAt: sample.ObservedAt,
		Relevant:  relevant,
	}
	return closed
}

// Finalize closes the open segment at the given instant, typically session
// stop. Returns the closed Entry, or nil when nothing was open or the
// segment had zero duration.
func (s *Segmenter) Finalize(now time.Time) *Entry {
	closed := s.close(now)
	s.open = nil
	return closed
}

// close converts the open segment into an Entry and appends it to the log.
func (s *Segmenter) close(now time.Time) *Entry {
	if s.open == nil {
		return nil
	}
	duration := s.open.ElapsedSeconds(now)
	if duration <= 0 {
		return nil
	}
	file, _ := ExtractFile(s.open.App, s.open.Title)
	entry := Entry{
		App:             s.open.App,
		Title:           s.open.Title,
		File:            file,
		DurationSeconds: duration,
		StartedAt:       s.open.StartedAt,
		Relevant:        s.open.Relevant,
	}
	s.log = append(s.log, entry)
	return &entry
}

// matches reports whether the sample continues the open segment under the
// configured policy.
func (s *Segmenter) matches(sample Sample) bool {
	if s.open.App != sample.App {
		return false
	}
	switch s.policy {
	case MatchAppOnly:
		return true
	case MatchNormalizedTitle:
		return normalizeTitle(s.open.Title) == normalizeTitle(sample.Title)
	default:
		return s.open.Title == sample.Title
	}
}

// Open returns a copy of the open segment, or nil when none is open.
func (s *Segmenter) Open() *OpenSegment {
	if s.open == nil {
		return nil
	}
	open := *s.open
	return &open
}

// Log returns a copy of the closed-entry log.
func (s *Segmenter) Log() []Entry {
	log := make([]Entry, len(s.log))
	copy(log, s.log)
	return log
}

// normalizeTitle lower-cases a title and collapses runs of whitespace.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
