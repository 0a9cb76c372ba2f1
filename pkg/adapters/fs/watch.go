package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/myflomo/pkg/core"
)

// Watch reports changes made to the storage directory by other processes.
// Writes performed through this Storage are suppressed by content hash.
// The returned channel is closed when ctx is done.
func (s *Storage) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	s.snapshot()
	s.setWatcherActive(true)

	events := make(chan core.Event)
	deb := newDebouncer(s.config.Debounce)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer s.setWatcherActive(false)
		defer watcher.Close()

		err := s.watchLoop(ctx, watcher, deb, events)

		// in-flight callbacks may still send; wait before closing events
		deb.stopAndWait()
		return err
	}, lifecycle.WithErrorHandler(s.handleError))

	s.logger.Debug("watching storage", "path", s.Path)
	return events, nil
}

func (s *Storage) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, deb *debouncer, events chan<- core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			key, ok := keyFromFile(filepath.Base(event.Name))
			if !ok {
				continue
			}
			s.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

			deb.add(key, func() {
				e, changed := s.reconcile(key)
				if !changed {
					return
				}
				select {
				case events <- e:
				case <-ctx.Done():
				}
			})

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			s.handleError(wErr)
		}
	}
}

// reconcile compares the file for key with the last known content and
// reports the resulting change, if any.
func (s *Storage) reconcile(key string) (core.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// read under the lock so a concurrent Set cannot slip in between
	data, err := os.ReadFile(filepath.Join(s.Path, key+FileExt))

	prev, existed := s.known[key]
	e := core.Event{Key: key, Timestamp: time.Now().UnixMilli()}

	switch {
	case errors.Is(err, os.ErrNotExist):
		if !existed {
			return core.Event{}, false
		}
		delete(s.known, key)
		e.Type = core.EventDelete
	case err != nil:
		s.logger.Warn("failed to read changed file", "key", key, "error", err)
		return core.Event{}, false
	default:
		sum := xxhash.Sum64(data)
		if existed && sum == prev {
			return core.Event{}, false
		}
		s.known[key] = sum
		e.Type = core.EventModify
		if !existed {
			e.Type = core.EventCreate
		}
	}

	now := time.Now()
	s.lastEvent = &now
	return e, true
}

// snapshot records the current content hash of every key so that the first
// external change is classified correctly.
func (s *Storage) snapshot() {
	keys, err := s.Keys()
	if err != nil {
		s.logger.Warn("failed to list storage keys", "path", s.Path, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		data, err := os.ReadFile(filepath.Join(s.Path, key+FileExt))
		if err != nil {
			continue
		}
		s.known[key] = xxhash.Sum64(data)
	}
}

func (s *Storage) handleError(err error) {
	s.logger.Error("watcher error", "path", s.Path, "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

func (s *Storage) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
