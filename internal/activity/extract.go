package activity

import (
	"regexp"
	"strings"
)

// extractRule maps an application family to a title-parsing pattern.
// Rules are evaluated in order; the first family whose fragment appears in
// the (lower-cased) app name wins, and at most one extraction is attempted.
type extractRule struct {
	family  string         // case-insensitive fragment matched against the app name
	pattern *regexp.Regexp // applied to the window title
	group   int            // capture group holding the document name
	// dashFallback splits the title on the first dash-like separator when
	// the primary pattern does not match (editor titles vary wildly).
	dashFallback bool
}

var (
	// Editors title their windows "<file> — <folder> — <editor>". All three
	// dash variants (hyphen, en dash, em dash) appear in the wild.
	editorTitle = regexp.MustCompile(`^(.+?)\s+[-–—]\s+.+$`)

	// Browsers append their own name: "<page title> — <browser>". Capture
	// everything before the final separator so page titles containing
	// dashes survive.
	browserTitle = regexp.MustCompile(`^(.+)\s+[-–—]\s+[^-–—]+$`)

	dashSeparator = regexp.MustCompile(`\s+[-–—]\s+`)
)

// extractRules is ordered: editor families are checked before browsers.
// New applications are supported by adding entries, not branches.
var extractRules = []extractRule{
	{family: "visual studio code", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "vscodium", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "code", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "cursor", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "windsurf", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "zed", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "sublime", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "intellij", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "goland", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "pycharm", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "webstorm", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "rider", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "xcode", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "editor", pattern: editorTitle, group: 1, dashFallback: true},
	{family: "chromium", pattern: browserTitle, group: 1},
	{family: "chrome", pattern: browserTitle, group: 1},
	{family: "safari", pattern: browserTitle, group: 1},
	{family: "firefox", pattern: browserTitle, group: 1},
	{family: "edge", pattern: browserTitle, group: 1},
	{family: "brave", pattern: browserTitle, group: 1},
	{family: "opera", pattern: browserTitle, group: 1},
	{family: "arc", pattern: browserTitle, group: 1},
	{family: "vivaldi", pattern: browserTitle, group: 1},
	{family: "browser", pattern: browserTitle, group: 1},
}

// ExtractFile derives a file or document identifier from a window title.
// A false result is not an error: terminals, design tools and many other
// relevant applications legitimately have no associated file.
func ExtractFile(app, title string) (string, bool) {
	appLower := strings.ToLower(app)

	for _, r := range extractRules {
		if !strings.Contains(appLower, r.family) {
			continue
		}
		if m := r.pattern.FindStringSubmatch(title); m != nil {
			if doc := strings.TrimSpace(m[r.group]); doc != "" {
				return doc, true
			}
		}
		if r.dashFallback {
			parts := dashSeparator.Split(title, 2)
			if len(parts) == 2 {
				if doc := strings.TrimSpace(parts[0]); doc != "" {
					return doc, true
				}
			}
		}
		// First matching family wins; one attempt per sample.
		return "", false
	}
	return "", false
}
