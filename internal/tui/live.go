// Package tui provides the Bubble Tea interfaces for worklens: the live
// tracking view shown during a session and the viewer for saved reports.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/worklens/worklens/internal/tracker"
)

// UpdateMsg wraps a tracker snapshot for delivery into the Bubble Tea loop.
// The track command's subscriber sends one per sample via Program.Send.
type UpdateMsg tracker.Update

var (
	liveTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	liveLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	liveDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	liveTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	relevantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	distractionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	noteBulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	liveHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// maxRecentEntries bounds the closed-entry list shown on screen.
const maxRecentEntries = 8

// LiveModel is the Bubble Tea model for an in-progress tracking session.
// It reads from the Tracker only in response to messages, never in View.
type LiveModel struct {
	tracker *tracker.Tracker
	role    string

	latest     tracker.Update
	hasSample  bool
	recent     []recentEntry
	notes      []tracker.Note
	noteInput  textinput.Model
	takingNote bool
	width      int
}

type recentEntry struct {
	app      string
	title    string
	duration int
	relevant bool
}

// NewLive creates the live view for the given tracker and role.
func NewLive(t *tracker.Tracker, role string) LiveModel {
	input := textinput.New()
	input.Placeholder = "note text"
	input.CharLimit = 300
	input.Width = 60

	return LiveModel{
		tracker:   t,
		role:      role,
		noteInput: input,
	}
}

func (m LiveModel) Init() tea.Cmd { return nil }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateMsg:
		m.latest = tracker.Update(msg)
		m.hasSample = true
		m.refreshRecent()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.takingNote {
			switch msg.String() {
			case "enter":
				text := strings.TrimSpace(m.noteInput.Value())
				if text != "" {
					m.tracker.AddNote(text)
					m.notes = m.tracker.Notes()
				}
				m.noteInput.Reset()
				m.takingNote = false
				return m, nil
			case "esc":
				m.noteInput.Reset()
				m.takingNote = false
				return m, nil
			}
			var cmd tea.Cmd
			m.noteInput, cmd = m.noteInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n":
			m.takingNote = true
			m.noteInput.Focus()
			return m, textinput.Blink
		case "d":
			m.tracker.RemoveLastNote()
			m.notes = m.tracker.Notes()
			return m, nil
		}
	}
	return m, nil
}

// refreshRecent pulls the tail of the closed-entry log from the tracker.
func (m *LiveModel) refreshRecent() {
	entries := m.tracker.Activities()
	if len(entries) > maxRecentEntries {
		entries = entries[len(entries)-maxRecentEntries:]
	}
	m.recent = m.recent[:0]
	for _, e := range entries {
		m.recent = append(m.recent, recentEntry{
			app:      e.App,
			title:    e.Title,
			duration: e.DurationSeconds,
			relevant: e.Relevant,
		})
	}
	m.notes = m.tracker.Notes()
}

func (m LiveModel) View() string {
	var sb strings.Builder

	sb.WriteString(liveTitleStyle.Render("  worklens  tracking — "+m.role) + "\n\n")

	// Current segment.
	sb.WriteString(liveLabelStyle.Render("  Now") + "\n")
	if !m.hasSample {
		sb.WriteString(liveDimStyle.Render("    waiting for first sample…") + "\n")
	} else {
		badge := relevantStyle.Render("work")
		if !m.latest.Relevant {
			badge = distractionStyle.Render("distraction")
		}
		sb.WriteString(fmt.Sprintf("    %s  %s\n", m.latest.App, badge))
		if m.latest.Title != "" {
			sb.WriteString(liveDimStyle.Render("    "+m.latest.Title) + "\n")
		}
		if m.latest.File != "" {
			sb.WriteString(fmt.Sprintf("    file: %s\n", m.latest.File))
		}
		elapsed := (time.Duration(m.latest.ElapsedSeconds) * time.Second).String()
		sb.WriteString(liveTimeStyle.Render("    "+elapsed) + "\n")
		if m.latest.Screenshot != "" {
			sb.WriteString(liveDimStyle.Render(fmt.Sprintf("    screenshot captured (%d bytes)", len(m.latest.Screenshot))) + "\n")
		}
	}
	sb.WriteString("\n")

	// Recently closed segments.
	sb.WriteString(liveLabelStyle.Render("  Recent") + "\n")
	if len(m.recent) == 0 {
		sb.WriteString(liveDimStyle.Render("    (no closed segments yet)") + "\n")
	} else {
		for i := len(m.recent) - 1; i >= 0; i-- {
			e := m.recent[i]
			mark := relevantStyle.Render("●")
			if !e.relevant {
				mark = distractionStyle.Render("●")
			}
			sb.WriteString(fmt.Sprintf("    %s %-20s %4ds  %s\n",
				mark, truncate(e.app, 20), e.duration, liveDimStyle.Render(truncate(e.title, 40))))
		}
	}
	sb.WriteString("\n")

	// Notes.
	sb.WriteString(liveLabelStyle.Render(fmt.Sprintf("  Notes (%d)", len(m.notes))) + "\n")
	for _, n := range m.notes {
		ts := liveTimeStyle.Render(n.Timestamp.Format("15:04:05"))
		sb.WriteString(fmt.Sprintf("    %s %s  %s\n", noteBulletStyle.Render("•"), ts, n.Text))
	}
	sb.WriteString("\n")

	if m.takingNote {
		sb.WriteString("  " + m.noteInput.View() + "\n")
		sb.WriteString(liveHintStyle.Render("  enter save  esc cancel") + "\n")
	} else {
		sb.WriteString(liveHintStyle.Render("  n note  d delete last note  q stop session") + "\n")
	}

	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
