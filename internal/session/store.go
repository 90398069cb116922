package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession is returned by Load when no marker file exists on disk.
var ErrNoSession = errors.New("no active session")

// MarkerStore persists a Marker to disk.
type MarkerStore interface {
	Save(m *Marker) error
	Load() (*Marker, error) // returns ErrNoSession if none exists
	Delete() error
}

// diskStore is the concrete MarkerStore that writes to the XDG data directory.
type diskStore struct {
	path string // full path to session.json
}

// NewMarkerStore returns a MarkerStore backed by the XDG data directory.
// Path: $XDG_DATA_HOME/worklens/session.json or ~/.local/share/worklens/session.json
func NewMarkerStore() (MarkerStore, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &diskStore{path: filepath.Join(dir, "session.json")}, nil
}

// DataDir returns the worklens-specific XDG data directory, creating it if
// needed. Also used for the session log file while the TUI owns the terminal.
func DataDir() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func dataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "worklens"), nil
}

// Save marshals m to JSON and writes it atomically via a temp file + os.Rename.
func (d *diskStore) Save(m *Marker) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to persist session marker: %w", err)
	}

	// Write to a temp file in the same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(d.path), "session-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist session marker: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist session marker: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist session marker: %w", err)
	}

	if err = os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("failed to persist session marker: %w", err)
	}
	return nil
}

// Load reads and unmarshals the marker file.
// Returns ErrNoSession if the file does not exist.
func (d *diskStore) Load() (*Marker, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session marker: %w", err)
	}

	var m Marker
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse session marker: %w", err)
	}
	return &m, nil
}

// Delete removes the marker file from disk.
func (d *diskStore) Delete() error {
	if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session marker: %w", err)
	}
	return nil
}
