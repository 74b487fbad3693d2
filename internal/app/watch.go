package app

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	log "github.com/chmouel/lazystage/internal/log"
)

// watchDebounce is the minimum interval between watcher-driven refreshes.
const watchDebounce = 600 * time.Millisecond

// watchService watches the repository metadata directory and coalesces
// change events into refresh triggers. It is the only background
// goroutine in the application and only ever signals a channel; state
// mutation stays on the event loop.
type watchService struct {
	started     bool
	waiting     bool
	events      chan struct{}
	done        chan struct{}
	watcher     *fsnotify.Watcher
	lastRefresh time.Time
	mu          sync.Mutex
	paths       map[string]struct{}
}

func newWatchService() *watchService {
	return &watchService{}
}

// start begins watching gitDir and its ref/log subtrees.
func (w *watchService) start(gitDir string) (bool, error) {
	if w.started || gitDir == "" {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.started = true
	w.watcher = watcher
	w.events = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.paths = make(map[string]struct{})

	w.addDir(gitDir)
	w.addDir(filepath.Join(gitDir, "refs"))
	w.addDir(filepath.Join(gitDir, "refs", "heads"))
	w.addDir(filepath.Join(gitDir, "logs"))

	go w.run()
	return true, nil
}

func (w *watchService) stop() {
	if !w.started {
		return
	}
	close(w.done)
	w.started = false
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

// nextEvent returns the event channel, or nil if a wait is already
// outstanding. The caller resets the flag once the event is consumed.
func (w *watchService) nextEvent() <-chan struct{} {
	if w.events == nil || w.waiting {
		return nil
	}
	w.waiting = true
	return w.events
}

func (w *watchService) resetWaiting() {
	w.waiting = false
}

// shouldRefresh applies the debounce window to watcher events.
func (w *watchService) shouldRefresh(now time.Time) bool {
	if !w.lastRefresh.IsZero() && now.Sub(w.lastRefresh) < watchDebounce {
		return false
	}
	w.lastRefresh = now
	return true
}

func (w *watchService) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// Lock file churn from our own git invocations is noise.
			if strings.HasSuffix(event.Name, ".lock") {
				continue
			}
			w.signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

func (w *watchService) signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *watchService) addDir(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.paths[path]; ok {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		log.Printf("watcher add failed for %s: %v", path, err)
		return
	}
	w.paths[path] = struct{}{}
}
