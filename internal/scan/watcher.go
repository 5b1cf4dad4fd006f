package scan

import (
	"context"
	"log/slog"

	"github.com/rjeczalik/notify"
)

// FileWatcher streams filesystem events for a project tree.
type FileWatcher struct {
	watchDir string
	events   chan notify.EventInfo
}

func NewFileWatcher(watchDir string) *FileWatcher {
	return &FileWatcher{
		watchDir: watchDir,
		// notify drops events on an unbuffered channel under bursts
		events: make(chan notify.EventInfo, 64),
	}
}

func (fw *FileWatcher) Start(ctx context.Context) error {
	slog.Info("file watcher start", "dir", fw.watchDir)

	recursivePath := fw.watchDir + "/..."
	if err := notify.Watch(recursivePath, fw.events, notify.Write, notify.Create, notify.Remove, notify.Rename); err != nil {
		return err
	}
	return nil
}

func (fw *FileWatcher) Stop() {
	notify.Stop(fw.events)
	close(fw.events)
	slog.Info("file watcher stop")
}

func (fw *FileWatcher) Events() <-chan notify.EventInfo {
	return fw.events
}
