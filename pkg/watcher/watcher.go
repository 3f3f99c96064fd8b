package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/trailgraph/pkg/logging"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	// ChangeTypeWritten covers create, write and rename-into-place
	ChangeTypeWritten ChangeType = iota
	// ChangeTypeRemoved means the file is gone, keep serving the old data
	ChangeTypeRemoved
)

func (c ChangeType) String() string {
	switch c {
	case ChangeTypeWritten:
		return "written"
	case ChangeTypeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ChangeEvent represents one or more coalesced changes of the watched file
type ChangeEvent struct {
	Type      ChangeType
	Path      string
	Count     int
	Timestamp time.Time
}

// FileWatcher watches a single GPX file. The parent directory is watched so
// that editors replacing the file atomically are noticed too.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
}

// NewFileWatcher creates a watcher for path
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan ChangeEvent, 16),
	}, nil
}

// Start begins watching; events stop when ctx is cancelled
func (fw *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		_ = fw.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logging.Info("watching gpx file", "path", fw.path)
	go fw.processEvents(ctx)
	return nil
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer close(fw.events)
	defer fw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			change, relevant := classify(event, fw.path)
			if !relevant {
				continue
			}
			logging.Trace("file event", "op", event.Op.String(), "path", event.Name)

			select {
			case fw.events <- ChangeEvent{Type: change, Path: fw.path, Count: 1, Timestamp: time.Now()}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// classify maps an fsnotify event to a change of the watched file
func classify(event fsnotify.Event, path string) (ChangeType, bool) {
	if filepath.Clean(event.Name) != path {
		return 0, false
	}
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return ChangeTypeWritten, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return ChangeTypeRemoved, true
	default:
		return 0, false
	}
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}
