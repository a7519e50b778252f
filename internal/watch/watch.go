// Package watch observes the repository for external changes: hg metadata
// activity drives refresh, and the appearance of a .hg directory lets the
// model recover after losing its repository.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is the debounce window for watcher-driven refreshes.
const Debounce = 600 * time.Millisecond

// Service manages the repository watcher state.
type Service struct {
	root string
	logf func(string, ...any)

	mu          sync.Mutex
	started     bool
	watcher     *fsnotify.Watcher
	paths       map[string]struct{}
	events      chan struct{}
	done        chan struct{}
	lastRefresh time.Time
}

// New creates a Service for the repository at root.
func New(root string, logf func(string, ...any)) *Service {
	return &Service{root: root, logf: logf}
}

// Start initialises the watcher and starts the background goroutine.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	s.started = true
	s.watcher = watcher
	s.paths = make(map[string]struct{})
	s.events = make(chan struct{}, 1)
	s.done = make(chan struct{})

	s.addLocked(s.root)
	s.armLocked()

	go s.run()
	return nil
}

// Stop stops the watcher and closes channels.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	close(s.done)
	s.started = false
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}

// Events returns the coalesced event channel.
func (s *Service) Events() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

// Rearm re-registers the hg metadata directories. Called after the model
// loses its repository, and harmless to call when nothing changed.
func (s *Service) Rearm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.armLocked()
}

// ShouldRefresh checks debounce timing for watcher events.
func (s *Service) ShouldRefresh(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastRefresh.IsZero() && now.Sub(s.lastRefresh) < Debounce {
		return false
	}
	s.lastRefresh = now
	return true
}

// armLocked registers the hg metadata directories that exist right now.
func (s *Service) armLocked() {
	hgDir := filepath.Join(s.root, ".hg")
	s.addLocked(hgDir)
	s.addLocked(filepath.Join(hgDir, "store"))
}

func (s *Service) addLocked(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if _, ok := s.paths[path]; ok {
		return
	}
	if err := s.watcher.Add(path); err != nil {
		s.debugf("watcher add failed for %s: %v", path, err)
		return
	}
	s.paths[path] = struct{}{}
}

func (s *Service) run() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 && filepath.Base(event.Name) == ".hg" {
				// A repository appeared; watch its internals too
				s.Rearm()
			}
			s.signal()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.debugf("watcher error: %v", err)
		}
	}
}

// signal notifies listeners of watcher activity without blocking.
func (s *Service) signal() {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.events <- struct{}{}:
	default:
	}
}

func (s *Service) debugf(format string, args ...any) {
	if s.logf == nil {
		return
	}
	s.logf(format, args...)
}
