package report

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Renderer serializes a Report to bytes.
type Renderer interface {
	Render(r *Report) ([]byte, error)
}

// JSONRenderer renders a Report as indented JSON.
type JSONRenderer struct{}

func (jr *JSONRenderer) Render(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// MarkdownRenderer renders a Report as human-readable Markdown with an
// embedded base64 JSON payload for lossless round-trip parsing.
type MarkdownRenderer struct{}

func (mr *MarkdownRenderer) Render(r *Report) ([]byte, error) {
	// Marshal to JSON and base64-encode for the embedded payload.
	jsonBytes, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(jsonBytes)

	var sb strings.Builder

	// Sentinel and embedded payload.
	sb.WriteString("<!-- worklens-report-version: 1 -->\n")
	fmt.Fprintf(&sb, "<!-- worklens-data: %s -->\n\n", encoded)

	// Title.
	fmt.Fprintf(&sb, "# Worklens — %s — %s\n\n",
		r.Session.Role,
		r.Session.StopTime.Format("2006-01-02 15:04:05 MST"),
	)

	// ## Session
	sb.WriteString("## Session\n\n")
	fmt.Fprintf(&sb, "- Role: %s\n", r.Session.Role)
	fmt.Fprintf(&sb, "- Started: %s\n", r.Session.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- Stopped: %s\n", r.Session.StopTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "- Duration: %s\n", r.Session.Duration)
	sb.WriteString("\n")

	// ## Applications
	sb.WriteString("## Applications\n\n")
	if len(r.Result.Summary) == 0 {
		sb.WriteString("_No activity recorded._\n")
	} else {
		sb.WriteString("| Application | Total | Files | Titles |\n")
		sb.WriteString("|-------------|-------|-------|--------|\n")
		for _, s := range r.Result.Summary {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				s.App,
				formatSeconds(s.TotalDurationSeconds),
				strings.Join(s.Files, ", "),
				strings.Join(s.Titles, ", "),
			)
		}
	}
	sb.WriteString("\n")

	// ## Activities
	sb.WriteString("## Activities\n\n")
	if len(r.Result.Activities) == 0 {
		sb.WriteString("_No relevant activity recorded._\n")
	} else {
		sb.WriteString("| Started | Application | Title | File | Duration |\n")
		sb.WriteString("|---------|-------------|-------|------|----------|\n")
		for _, e := range r.Result.Activities {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				e.StartedAt.Format("15:04:05"),
				e.App,
				e.Title,
				e.File,
				formatSeconds(e.DurationSeconds),
			)
		}
	}
	sb.WriteString("\n")

	// ## Notes
	sb.WriteString("## Notes\n\n")
	if len(r.Result.Notes) == 0 {
		sb.WriteString("_No notes._\n")
	} else {
		for _, n := range r.Result.Notes {
			fmt.Fprintf(&sb, "- [%s] %s\n", n.Timestamp.Format("2006-01-02 15:04:05"), n.Text)
		}
	}
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}

// formatSeconds renders a duration in seconds as "1h2m3s" style text.
func formatSeconds(total int) string {
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
