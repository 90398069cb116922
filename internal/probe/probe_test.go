package probe

import (
	"context"
	"testing"
)

func TestParseTabSeparated(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Window
		ok   bool
	}{
		{"app and title", "Safari\tGitHub — Safari", Window{App: "Safari", Title: "GitHub — Safari"}, true},
		{"empty title", "Finder\t", Window{App: "Finder"}, true},
		{"no tab at all", "Finder", Window{App: "Finder"}, true},
		{"title with commas", "Code\tmain.go, worklens", Window{App: "Code", Title: "main.go, worklens"}, true},
		{"padded", "  Terminal \t ~/src ", Window{App: "Terminal", Title: "~/src"}, true},
		{"empty output", "", Window{}, false},
		{"title only", "\tOrphan Title", Window{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseTabSeparated(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("window = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseActiveWindowID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"typical reply", "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x3c00007", "0x3c00007", true},
		{"multi-value reply", "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x3c00007, 0x0", "0x3c00007", true},
		{"nothing focused", "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x0", "", false},
		{"no hash marker", "_NET_ACTIVE_WINDOW:  not found.", "", false},
		{"empty after hash", "window id # ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseActiveWindowID(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseWindowProps(t *testing.T) {
	out := `WM_CLASS(STRING) = "code", "Code"
_NET_WM_NAME(UTF8_STRING) = "main.go — worklens — Visual Studio Code"
WM_NAME(STRING) = "stale title"`

	win, ok := parseWindowProps(out)
	if !ok {
		t.Fatal("expected a window")
	}
	if win.App != "Code" {
		t.Errorf("App = %q, want %q", win.App, "Code")
	}
	if win.Title != "main.go — worklens — Visual Studio Code" {
		t.Errorf("Title = %q", win.Title)
	}
}

func TestParseWindowPropsFallsBackToWMName(t *testing.T) {
	out := `WM_CLASS(STRING) = "xterm", "XTerm"
_NET_WM_NAME:  not found.
WM_NAME(STRING) = "bash"`

	win, ok := parseWindowProps(out)
	if !ok {
		t.Fatal("expected a window")
	}
	if win.App != "XTerm" || win.Title != "bash" {
		t.Errorf("window = %+v, want XTerm/bash", win)
	}
}

func TestParseWindowPropsMissingClass(t *testing.T) {
	out := `WM_CLASS:  not found.
_NET_WM_NAME(UTF8_STRING) = "orphan"`

	if _, ok := parseWindowProps(out); ok {
		t.Error("a window without WM_CLASS has no app name and must be rejected")
	}
}

func TestExtractQuoted(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"two values", `WM_CLASS(STRING) = "instance", "Class"`, []string{"instance", "Class"}},
		{"single value", `_NET_WM_NAME(UTF8_STRING) = "title"`, []string{"title"}},
		{"no quotes", `_NET_WM_NAME:  not found.`, nil},
		{"unterminated quote", `WM_NAME(STRING) = "dangling`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractQuoted(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("value %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFakeReplaysScriptAndRepeatsLast(t *testing.T) {
	f := &Fake{Results: []Result{
		{Window: Window{App: "Code"}, OK: true},
		{Window: Window{App: "Chrome"}, OK: true},
	}}
	ctx := context.Background()

	if w, ok := f.Probe(ctx); !ok || w.App != "Code" {
		t.Fatalf("first probe = %v/%v", w, ok)
	}
	for i := 0; i < 3; i++ {
		if w, ok := f.Probe(ctx); !ok || w.App != "Chrome" {
			t.Fatalf("probe %d = %v/%v, want last result repeated", i+2, w, ok)
		}
	}
}

func TestFakeWithoutScriptFails(t *testing.T) {
	f := &Fake{}
	if _, ok := f.Probe(context.Background()); ok {
		t.Error("an unscripted fake must report failure")
	}
}
