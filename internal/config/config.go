package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/worklens/worklens/internal/activity"
)

// Config holds all configurable worklens settings.
type Config struct {
	Denylist              []string `json:"denylist"`                // distraction keywords; empty means built-in defaults
	SampleIntervalSeconds int      `json:"sample_interval_seconds"` // sampling period
	SegmentMatch          string   `json:"segment_match"`           // "exact" | "app" | "title-normalized"
	Screenshots           *bool    `json:"screenshots"`             // capture a preview per relevant sample
	ScreenshotQuality     int      `json:"screenshot_quality"`      // JPEG quality 1-100
	DefaultFormat         string   `json:"default_format"`          // "markdown" | "json"
	OutputDir             string   `json:"output_dir"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		SampleIntervalSeconds: 3,
		SegmentMatch:          "exact",
		ScreenshotQuality:     60,
		DefaultFormat:         "markdown",
		OutputDir:             ".",
	}
}

// Interval returns the sampling period as a duration.
func (c Config) Interval() time.Duration {
	if c.SampleIntervalSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.SampleIntervalSeconds) * time.Second
}

// MatchPolicy maps the configured segment_match string to a policy.
func (c Config) MatchPolicy() activity.MatchPolicy {
	return activity.ParseMatchPolicy(c.SegmentMatch)
}

// ScreenshotsEnabled reports the screenshots toggle, defaulting to off.
func (c Config) ScreenshotsEnabled() bool {
	return c.Screenshots != nil && *c.Screenshots
}

// GlobalPath returns the global config file location:
// ~/.config/worklens/config.json.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "worklens", "config.json"), nil
}

// LoadGlobal reads the global config file.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .worklensconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".worklensconfig", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	for _, layer := range []*Config{global, project} {
		if layer == nil {
			continue
		}
		if len(layer.Denylist) > 0 {
			result.Denylist = layer.Denylist
		}
		if layer.SampleIntervalSeconds > 0 {
			result.SampleIntervalSeconds = layer.SampleIntervalSeconds
		}
		if layer.SegmentMatch != "" {
			result.SegmentMatch = layer.SegmentMatch
		}
		if layer.Screenshots != nil {
			result.Screenshots = layer.Screenshots
		}
		if layer.ScreenshotQuality > 0 {
			result.ScreenshotQuality = layer.ScreenshotQuality
		}
		if layer.DefaultFormat != "" {
			result.DefaultFormat = layer.DefaultFormat
		}
		if layer.OutputDir != "" {
			result.OutputDir = layer.OutputDir
		}
	}
	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
