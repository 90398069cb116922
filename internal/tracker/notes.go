package tracker

import (
	"strings"
	"time"
)

// Note is a user-supplied annotation, independent of the activity log.
type Note struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// noteStore keeps notes in insertion order. Removal never reorders the
// remaining notes. All operations are O(n) scans; note counts are tiny.
type noteStore struct {
	notes []Note
}

func (s *noteStore) add(text string, at time.Time) {
	s.notes = append(s.notes, Note{Text: text, Timestamp: at})
}

// remove deletes the first note whose text equals or contains the given
// text. Substring matching is intentional: UIs delete by partial match.
// An empty query matches nothing.
func (s *noteStore) remove(text string) bool {
	if text == "" {
		return false
	}
	for i, n := range s.notes {
		if strings.Contains(n.Text, text) {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return true
		}
	}
	return false
}

// removeLast pops the most recently added note.
func (s *noteStore) removeLast() bool {
	if len(s.notes) == 0 {
		return false
	}
	s.notes = s.notes[:len(s.notes)-1]
	return true
}

// all returns a copy so callers cannot mutate the store.
func (s *noteStore) all() []Note {
	notes := make([]Note, len(s.notes))
	copy(notes, s.notes)
	return notes
}

func (s *noteStore) reset() {
	s.notes = nil
}
