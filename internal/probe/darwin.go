package probe

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// frontmostScript asks System Events for the frontmost process and its
// front window title. The tab separator keeps parsing unambiguous even when
// titles contain commas.
const frontmostScript = `
tell application "System Events"
	set frontProc to first application process whose frontmost is true
	set appName to name of frontProc
	set winTitle to ""
	try
		set winTitle to name of front window of frontProc
	end try
end tell
return appName & tab & winTitle
`

// appleScriptProber queries the frontmost window via osascript. Requires
// the Accessibility permission; without it the query fails and the probe
// degrades to a false result.
type appleScriptProber struct {
	log zerolog.Logger
}

func (p *appleScriptProber) Probe(ctx context.Context) (Window, bool) {
	out, err := runCommand(ctx, "osascript", "-e", frontmostScript)
	if err != nil {
		p.log.Debug().Err(err).Msg("osascript query failed")
		return Window{}, false
	}
	return parseTabSeparated(out)
}

// parseTabSeparated splits "app\ttitle" output shared by the darwin and
// windows strategies. The title may be empty; the app name may not.
func parseTabSeparated(out string) (Window, bool) {
	app, title, _ := strings.Cut(out, "\t")
	app = strings.TrimSpace(app)
	if app == "" {
		return Window{}, false
	}
	return Window{App: app, Title: strings.TrimSpace(title)}, true
}
