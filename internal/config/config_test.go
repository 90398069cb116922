package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/worklens/worklens/internal/activity"
)

func boolPtr(b bool) *bool { return &b }

func TestDefaults(t *testing.T) {
	d := Defaults()

	if d.SampleIntervalSeconds != 3 {
		t.Errorf("SampleIntervalSeconds = %d, want 3", d.SampleIntervalSeconds)
	}
	if d.SegmentMatch != "exact" {
		t.Errorf("SegmentMatch = %q, want %q", d.SegmentMatch, "exact")
	}
	if d.ScreenshotQuality != 60 {
		t.Errorf("ScreenshotQuality = %d, want 60", d.ScreenshotQuality)
	}
	if d.DefaultFormat != "markdown" {
		t.Errorf("DefaultFormat = %q, want %q", d.DefaultFormat, "markdown")
	}
	if d.ScreenshotsEnabled() {
		t.Error("screenshots must default to off")
	}
}

func TestInterval(t *testing.T) {
	if got := (Config{SampleIntervalSeconds: 10}).Interval(); got != 10*time.Second {
		t.Errorf("Interval = %v, want 10s", got)
	}
	if got := (Config{}).Interval(); got != 3*time.Second {
		t.Errorf("zero interval should fall back to 3s, got %v", got)
	}
	if got := (Config{SampleIntervalSeconds: -1}).Interval(); got != 3*time.Second {
		t.Errorf("negative interval should fall back to 3s, got %v", got)
	}
}

func TestMatchPolicy(t *testing.T) {
	if got := (Config{SegmentMatch: "app"}).MatchPolicy(); got != activity.MatchAppOnly {
		t.Errorf("MatchPolicy(app) = %v, want MatchAppOnly", got)
	}
	if got := (Config{}).MatchPolicy(); got != activity.MatchExact {
		t.Errorf("empty segment_match should map to MatchExact, got %v", got)
	}
}

func TestMergePrecedence(t *testing.T) {
	global := &Config{
		Denylist:              []string{"youtube"},
		SampleIntervalSeconds: 5,
		DefaultFormat:         "json",
		Screenshots:           boolPtr(true),
	}
	project := &Config{
		Denylist:     []string{"netflix", "reddit"},
		SegmentMatch: "app",
		Screenshots:  boolPtr(false),
	}

	merged := Merge(global, project)

	// Project layer wins where set.
	if len(merged.Denylist) != 2 || merged.Denylist[0] != "netflix" {
		t.Errorf("Denylist = %v, want project's", merged.Denylist)
	}
	if merged.SegmentMatch != "app" {
		t.Errorf("SegmentMatch = %q, want %q", merged.SegmentMatch, "app")
	}
	if merged.ScreenshotsEnabled() {
		t.Error("project screenshots=false must override global true")
	}

	// Global fills what the project leaves unset.
	if merged.SampleIntervalSeconds != 5 {
		t.Errorf("SampleIntervalSeconds = %d, want 5", merged.SampleIntervalSeconds)
	}
	if merged.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q, want %q", merged.DefaultFormat, "json")
	}

	// Defaults fill the rest.
	if merged.ScreenshotQuality != 60 {
		t.Errorf("ScreenshotQuality = %d, want default 60", merged.ScreenshotQuality)
	}
}

func TestMergeNilLayers(t *testing.T) {
	merged := Merge(nil, nil)
	if merged.SampleIntervalSeconds != Defaults().SampleIntervalSeconds {
		t.Error("merging nil layers must yield defaults")
	}

	merged = Merge(&Config{OutputDir: "/tmp/reports"}, nil)
	if merged.OutputDir != "/tmp/reports" {
		t.Errorf("OutputDir = %q, want %q", merged.OutputDir, "/tmp/reports")
	}
}

func TestLoadFileAbsent(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	cfg, err := loadFile(missing, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || cfg.SampleIntervalSeconds != 3 {
		t.Errorf("absent file with returnDefaults should yield defaults, got %+v", cfg)
	}

	cfg, err = loadFile(missing, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("absent file without returnDefaults should yield nil, got %+v", cfg)
	}
}

func TestLoadFileParsesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"denylist":["youtube","netflix"],"sample_interval_seconds":5,"screenshots":true}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFile(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Denylist) != 2 {
		t.Errorf("Denylist = %v", cfg.Denylist)
	}
	if cfg.SampleIntervalSeconds != 5 {
		t.Errorf("SampleIntervalSeconds = %d, want 5", cfg.SampleIntervalSeconds)
	}
	if !cfg.ScreenshotsEnabled() {
		t.Error("screenshots should be enabled")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := loadFile(path, false)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}
	if parseErr.Unwrap() == nil {
		t.Error("ParseError must wrap the underlying JSON error")
	}
}

func TestLoadProjectAbsent(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadProject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("absent project config should yield nil, got %+v", cfg)
	}
}
