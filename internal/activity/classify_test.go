package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/worklens/worklens/internal/activity"
)

func TestClassifierDefaultDenylist(t *testing.T) {
	c := activity.NewClassifier(nil)

	tests := []struct {
		name  string
		app   string
		title string
		want  bool
	}{
		{"editor is work", "Code", "main.go — myproj — Visual Studio Code", true},
		{"youtube in title", "Chrome", "Watching cats on YouTube", false},
		{"case insensitive", "chrome", "WATCHING CATS ON YOUTUBE", false},
		{"denylisted app name", "Discord", "general", false},
		{"unknown app is relevant", "Obscure Design Tool", "untitled-3", true},
		{"terminal is work", "iTerm2", "~/src/worklens", true},
		{"streaming", "Safari", "Stranger Things | Netflix", false},
		{"empty title", "Figma", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Relevant(tt.app, tt.title))
		})
	}
}

func TestClassifierCustomDenylist(t *testing.T) {
	c := activity.NewClassifier([]string{"hacker news"})

	assert.False(t, c.Relevant("Firefox", "Hacker News — front page"))
	// Custom lists replace the defaults entirely.
	assert.True(t, c.Relevant("Chrome", "cats on YouTube"))
}

func TestClassifierSetDenylistSwapsAtRuntime(t *testing.T) {
	c := activity.NewClassifier([]string{"youtube"})
	assert.False(t, c.Relevant("Chrome", "cats on YouTube"))

	c.SetDenylist([]string{"netflix"})
	assert.True(t, c.Relevant("Chrome", "cats on YouTube"))
	assert.False(t, c.Relevant("Chrome", "Netflix — Home"))
}

func TestClassifierIgnoresBlankTerms(t *testing.T) {
	c := activity.NewClassifier([]string{"", "  ", "youtube"})

	// Blank terms must not match everything.
	assert.True(t, c.Relevant("Code", "main.go"))
	assert.False(t, c.Relevant("Chrome", "YouTube"))
}
