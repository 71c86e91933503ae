// Package watch triggers a callback when any of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kayz/sysprompt/internal/logger"
)

// DefaultDebounce coalesces bursts of editor writes into one callback.
const DefaultDebounce = 250 * time.Millisecond

// Run watches paths until ctx is cancelled and calls onChange after each
// debounced burst of events. Paths may not exist yet; their parent
// directories are watched instead of the files themselves, so files that
// editors replace by rename are still seen.
func Run(ctx context.Context, paths []string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve watch path %s: %w", p, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("Cannot watch %s: %v", dir, err)
		}
	}
	if len(watcher.WatchList()) == 0 {
		return fmt.Errorf("no watchable directories among %d paths", len(paths))
	}

	var mu sync.Mutex
	var timer *time.Timer
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, onChange)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if _, hit := targets[filepath.Clean(event.Name)]; !hit {
				continue
			}
			logger.Debug("Watched file changed: %s (%s)", event.Name, event.Op)
			schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}
