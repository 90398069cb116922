// Package probe resolves the currently focused application window.
//
// Each platform strategy shells out to the OS-native introspection tool with
// a hard timeout. Probes never surface errors: a false result means the
// query failed and the caller should substitute its fallback sample.
package probe

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Window is the application name and window title of the focused window.
type Window struct {
	App   string
	Title string
}

// Prober reports the currently focused window. A false result means the
// platform query failed; implementations must not return errors.
type Prober interface {
	Probe(ctx context.Context) (Window, bool)
}

// queryTimeout bounds each platform subprocess. Window-server queries are
// normally instant but can hang when the compositor is busy.
const queryTimeout = 2 * time.Second

// New selects the strategy for the current OS.
func New(logger zerolog.Logger) Prober {
	switch runtime.GOOS {
	case "darwin":
		return &appleScriptProber{log: logger}
	case "windows":
		return &powerShellProber{log: logger}
	default:
		return &xpropProber{log: logger}
	}
}

// runCommand executes a subprocess under the probe timeout and returns its
// trimmed stdout.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Result pairs a Window with the success flag for scripted fakes.
type Result struct {
	Window Window
	OK     bool
}

// Fake replays a scripted sequence of probe results. Once the script is
// exhausted the last result repeats, so tests can hold a window focused for
// any number of ticks.
type Fake struct {
	mu      sync.Mutex
	Results []Result
	next    int
}

// Probe implements Prober.
func (f *Fake) Probe(ctx context.Context) (Window, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Results) == 0 {
		return Window{}, false
	}
	r := f.Results[f.next]
	if f.next < len(f.Results)-1 {
		f.next++
	}
	return r.Window, r.OK
}
