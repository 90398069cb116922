package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-reads the config whenever the global config file changes and
// pushes the merged (global + project) result to onChange. It blocks until
// ctx is cancelled. Used by `track` to hot-reload the denylist mid-session.
//
// The parent directory is watched rather than the file itself: editors
// replace config files atomically, which would otherwise drop the watch.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			global, err := loadFile(path, true)
			if err != nil {
				continue // malformed mid-write; the next event retries naturally
			}
			project, err := LoadProject()
			if err != nil {
				project = nil
			}
			onChange(Merge(global, project))

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; keep watching.
		}
	}
}
