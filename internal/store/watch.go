package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits for writes to settle before
// reporting a change.
const DefaultDebounce = 100 * time.Millisecond

// Watch calls onChange whenever the named book file is written, created,
// replaced or removed. Bursts of events within debounce are coalesced into
// one call. The base directory is watched rather than the file itself so
// atomic renames by Save are observed. Watch blocks until ctx is done.
func (s *FileStore) Watch(ctx context.Context, name string, debounce time.Duration, onChange func()) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("store: creating directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("store: creating watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(s.baseDir); err != nil {
		return fmt.Errorf("store: watching %s: %w", s.baseDir, err)
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != p {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			s.logger.Debug("book changed", zap.String("path", p), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", zap.String("path", p), zap.Error(err))
		}
	}
}
