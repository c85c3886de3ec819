package secretstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// File serves secrets from a YAML document of name -> fields maps and
// reloads it when the file changes on disk.
type File struct {
	path string

	mu      sync.RWMutex
	secrets map[string]map[string]string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// FileOptions configures the file driver.
type FileOptions struct {
	// Path is the YAML file holding the secrets.
	Path string
	// Watch enables reloading on file change events.
	Watch bool
}

// NewFile loads the file once and, when requested, starts watching it.
func NewFile(opts FileOptions) (*File, error) {
	f := &File{path: opts.Path, done: make(chan struct{})}

	if err := f.reload(); err != nil {
		return nil, err
	}

	if opts.Watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("secretstore: watch %s: %w", opts.Path, err)
		}
		// Watch the directory: editors and configmap mounts replace the
		// file instead of writing it in place.
		if err := watcher.Add(filepath.Dir(opts.Path)); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("secretstore: watch %s: %w", opts.Path, err)
		}

		f.watcher = watcher
		go f.watch()
	}

	return f, nil
}

// Fetch returns the field map of one secret from the latest loaded snapshot.
func (f *File) Fetch(_ context.Context, name string) (map[string]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	fields, ok := f.secrets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return maps.Clone(fields), nil
}

// Close stops the watcher.
func (f *File) Close() error {
	close(f.done)
	if f.watcher != nil {
		return f.watcher.Close()
	}

	return nil
}

func (f *File) reload() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("secretstore: read %s: %w", f.path, err)
	}

	var secrets map[string]map[string]string
	if err := yaml.Unmarshal(raw, &secrets); err != nil {
		return fmt.Errorf("secretstore: parse %s: %w", f.path, err)
	}

	f.mu.Lock()
	f.secrets = secrets
	f.mu.Unlock()

	return nil
}

func (f *File) watch() {
	for {
		select {
		case <-f.done:
			return

		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(f.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := f.reload(); err != nil {
				slog.Error("secret file reload failed", "path", f.path, "error", err)
				continue
			}
			slog.Info("secret file reloaded", "path", f.path)

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				slog.Error("secret file watch error", "path", f.path, "error", err)
			}
		}
	}
}
