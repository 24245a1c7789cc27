package crossing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// SeedFile is the top-level structure of the crossings seed YAML file.
type SeedFile struct {
	Crossings []SeedEntry `yaml:"crossings"`
}

// SeedEntry describes one crossing in the seed file.
type SeedEntry struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	Description string  `yaml:"description,omitempty"`
}

// LoadSeed reads a seed file and upserts every crossing it contains.
// A missing file is not an error; the registry is then populated through
// the HTTP API only.
func LoadSeed(store *Store, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no crossings seed file, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read crossings seed: %w", err)
	}

	var sf SeedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse crossings seed: %w", err)
	}

	for _, entry := range sf.Crossings {
		if entry.ID == "" || entry.Name == "" {
			return fmt.Errorf("crossings seed: every entry needs id and name (got id=%q name=%q)", entry.ID, entry.Name)
		}
		rec := &Record{
			ID:          entry.ID,
			Name:        entry.Name,
			Latitude:    entry.Latitude,
			Longitude:   entry.Longitude,
			Description: entry.Description,
		}
		if err := store.Upsert(rec); err != nil {
			return err
		}
	}

	logger.Info("loaded crossings seed", "path", path, "crossings", len(sf.Crossings))
	return nil
}

// WatchSeed watches the seed file and re-applies it on change. Blocks until
// the context is canceled. Parse or write failures are logged and the watch
// continues; the registry keeps its last good state.
func WatchSeed(ctx context.Context, store *Store, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create seed watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops
	// watches placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch seed directory: %w", err)
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
			logger.Info("crossings seed changed, reloading", "path", path)
			if err := LoadSeed(store, path, logger); err != nil {
				logger.Error("crossings seed reload failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("crossings seed watcher error", "error", err)
		}
	}
}
