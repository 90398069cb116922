package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/worklens/worklens/internal/activity"
)

func TestExtractFileEditors(t *testing.T) {
	tests := []struct {
		name  string
		app   string
		title string
		want  string
		ok    bool
	}{
		{"vscode em dash", "Visual Studio Code", "main.go — worklens — Visual Studio Code", "main.go", true},
		{"vscode hyphen", "Code", "main.go - worklens - Visual Studio Code", "main.go", true},
		{"vscode en dash", "Code", "main.go – worklens – Visual Studio Code", "main.go", true},
		{"generic editor", "Editor", "a.ts — proj — Code", "a.ts", true},
		{"two-part title", "Cursor", "notes.md — scratch", "notes.md", true},
		{"goland", "GoLand", "tracker.go — worklens — GoLand 2024.1", "tracker.go", true},
		{"no dash at all", "Zed", "untitled", "", false},
		{"dirty spacing", "Sublime Text", "  config.yaml   —   infra  —  Sublime ", "config.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := activity.ExtractFile(tt.app, tt.title)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractFileBrowsers(t *testing.T) {
	tests := []struct {
		name  string
		app   string
		title string
		want  string
		ok    bool
	}{
		{"chrome suffix", "Google Chrome", "GitHub — Google Chrome", "GitHub", true},
		{"generic browser", "Browser", "GitHub — Chrome", "GitHub", true},
		{"page title containing dash", "Firefox", "Issue #42 — worklens — Mozilla Firefox", "Issue #42 — worklens", true},
		{"no suffix", "Safari", "New Tab", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := activity.ExtractFile(tt.app, tt.title)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractFileNoFamilyMatch(t *testing.T) {
	// Terminals and design tools have no rule family: no file, not an error.
	got, ok := activity.ExtractFile("iTerm2", "~/src — zsh")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestExtractFileEditorRulesWinOverBrowser(t *testing.T) {
	// An app matching an editor family never falls through to browser rules.
	got, ok := activity.ExtractFile("Code", "main.go — worklens — Visual Studio Code")
	assert.True(t, ok)
	assert.Equal(t, "main.go", got)
}
