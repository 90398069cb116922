package probe

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// xpropProber queries the X11 root window for the active window id, then
// reads that window's class and name. Wayland compositors without XWayland
// expose neither property, in which case the probe degrades to a false
// result.
type xpropProber struct {
	log zerolog.Logger
}

func (p *xpropProber) Probe(ctx context.Context) (Window, bool) {
	activeOut, err := runCommand(ctx, "xprop", "-root", "_NET_ACTIVE_WINDOW")
	if err != nil {
		p.log.Debug().Err(err).Msg("xprop root query failed")
		return Window{}, false
	}
	windowID, ok := parseActiveWindowID(activeOut)
	if !ok {
		p.log.Debug().Str("output", activeOut).Msg("no active window id")
		return Window{}, false
	}

	propsOut, err := runCommand(ctx, "xprop", "-id", windowID, "WM_CLASS", "_NET_WM_NAME", "WM_NAME")
	if err != nil {
		p.log.Debug().Err(err).Str("window_id", windowID).Msg("xprop window query failed")
		return Window{}, false
	}
	return parseWindowProps(propsOut)
}

// parseActiveWindowID extracts the hex window id from
// "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x3c00007".
func parseActiveWindowID(out string) (string, bool) {
	_, after, found := strings.Cut(out, "#")
	if !found {
		return "", false
	}
	id := strings.TrimSpace(after)
	// Some window managers report 0x0 when nothing is focused.
	if id == "" || id == "0x0" || id == "0" {
		return "", false
	}
	// Trailing ", 0x0" appears on multi-value replies.
	if i := strings.IndexAny(id, ", "); i != -1 {
		id = id[:i]
	}
	return id, id != "" && id != "0x0"
}

// parseWindowProps extracts the app name (second WM_CLASS value) and the
// window title (_NET_WM_NAME, falling back to WM_NAME) from xprop output.
func parseWindowProps(out string) (Window, bool) {
	var app, title string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "WM_CLASS"):
			// WM_CLASS(STRING) = "instance", "Class"
			values := extractQuoted(line)
			if len(values) > 0 {
				app = values[len(values)-1]
			}
		case strings.HasPrefix(line, "_NET_WM_NAME"):
			if values := extractQuoted(line); len(values) > 0 {
				title = values[0]
			}
		case strings.HasPrefix(line, "WM_NAME") && title == "":
			if values := extractQuoted(line); len(values) > 0 {
				title = values[0]
			}
		}
	}
	if app == "" {
		return Window{}, false
	}
	return Window{App: app, Title: title}, true
}

// extractQuoted returns the double-quoted substrings of an xprop reply line.
func extractQuoted(line string) []string {
	var values []string
	for {
		start := strings.IndexByte(line, '"')
		if start == -1 {
			return values
		}
		line = line[start+1:]
		end := strings.IndexByte(line, '"')
		if end == -1 {
			return values
		}
		values = append(values, line[:end])
		line = line[end+1:]
	}
}
