package config

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the configuration file and invokes onChange once per
// changed option key after each successful reload. It blocks until ctx is
// done. A reload that fails to parse keeps the previous configuration.
func Watch(ctx context.Context, path string, current *Config, onChange func(key string, cfg *Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// watch the directory: most editors replace the file on save
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
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			updated, err := LoadFromFile(path)
			if err != nil {
				log.Println("config: reload failed:", err)
				continue
			}
			for _, key := range updated.ChangedKeys(current) {
				log.Println("config: option changed:", key)
				onChange(key, updated)
			}
			current = updated
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("config: watch error:", err)
		}
	}
}
