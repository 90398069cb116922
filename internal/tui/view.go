package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/worklens/worklens/internal/report"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	workBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	distractionBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabSummary tabID = iota
	tabApplications
	tabActivities
	tabNotes
	tabCount
)

var tabNames = [tabCount]string{"Summary", "Applications", "Activities", "Notes"}

// ── Model ────────────────────

// ViewModel is the Bubble Tea model for browsing a saved report.
type ViewModel struct {
	report    *report.Report
	filename  string
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
}

// NewView creates a viewer model for the given report and source filename.
func NewView(r *report.Report, filename string) ViewModel {
	return ViewModel{
		report:   r,
		filename: filepath.Base(filename),
	}
}

// ── Bubble Tea interface ───────────────

func (m ViewModel) Init() tea.Cmd { return nil }

func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3", "4":
			m.activeTab = tabID(msg.String()[0] - '1')
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m ViewModel) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  worklens  " + m.filename)

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ scroll  1-4 jump  q quit"
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint + strings.Repeat(" ", pad) + pct)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *ViewModel) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

// ── Tab renderers ─────────────────────────────────────────────────────────────

func (m *ViewModel) renderTab(t tabID) string {
	switch t {
	case tabSummary:
		return m.renderSummary()
	case tabApplications:
		return m.renderApplications()
	case tabActivities:
		return m.renderActivities()
	case tabNotes:
		return m.renderNotes()
	}
	return ""
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func (m *ViewModel) renderSummary() string {
	s := m.report.Session
	var sb strings.Builder
	sb.WriteString(heading("Session Summary"))

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-14s", label)) + "  " + value + "\n")
	}
	row("Role:", s.Role)
	row("Started:", s.StartTime.Format("2006-01-02 15:04:05 MST"))
	row("Stopped:", s.StopTime.Format("2006-01-02 15:04:05 MST"))
	row("Duration:", s.Duration)

	sb.WriteString("\n")
	sb.WriteString(heading("Counts"))
	row("Applications:", fmt.Sprintf("%d", len(m.report.Result.Summary)))
	row("Activities:", fmt.Sprintf("%d", len(m.report.Result.Activities)))
	row("Notes:", fmt.Sprintf("%d", len(m.report.Result.Notes)))
	return sb.String()
}

func (m *ViewModel) renderApplications() string {
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Applications (%d)", len(m.report.Result.Summary))))
	if len(m.report.Result.Summary) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}

	// Bars are scaled against the busiest application.
	max := m.report.Result.Summary[0].TotalDurationSeconds
	if max == 0 {
		max = 1
	}
	for _, s := range m.report.Result.Summary {
		barLen := s.TotalDurationSeconds * 24 / max
		if barLen < 1 {
			barLen = 1
		}
		sb.WriteString(fmt.Sprintf("  %-24s %s %s\n",
			truncate(s.App, 24),
			barStyle.Render(strings.Repeat("█", barLen)),
			timeStyle.Render(fmt.Sprintf("%ds", s.TotalDurationSeconds)),
		))
		if len(s.Files) > 0 {
			sb.WriteString(dimStyle.Render("    files:  "+strings.Join(s.Files, ", ")) + "\n")
		}
		if len(s.Titles) > 0 {
			sb.WriteString(dimStyle.Render("    titles: "+strings.Join(s.Titles, ", ")) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *ViewModel) renderActivities() string {
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Activities (%d)", len(m.report.Result.Activities))))
	if len(m.report.Result.Activities) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}
	for _, e := range m.report.Result.Activities {
		ts := timeStyle.Render(e.StartedAt.Format("15:04:05"))
		badge := workBadgeStyle.Render("[work]")
		if !e.Relevant {
			badge = distractionBadgeStyle.Render("[distraction]")
		}
		sb.WriteString(fmt.Sprintf("  %s  %s  %s — %s (%ds)\n", ts, badge, e.App, e.Title, e.DurationSeconds))
		if e.File != "" {
			sb.WriteString(dimStyle.Render("           file: "+e.File) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *ViewModel) renderNotes() string {
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Notes (%d)", len(m.report.Result.Notes))))
	if len(m.report.Result.Notes) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}
	for _, n := range m.report.Result.Notes {
		ts := timeStyle.Render(n.Timestamp.Format("15:04:05"))
		sb.WriteString(fmt.Sprintf("  %s  %s\n\n", ts, n.Text))
	}
	return sb.String()
}

// RunView starts the viewer for the given report.
func RunView(r *report.Report, filename string) error {
	p := tea.NewProgram(NewView(r, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
