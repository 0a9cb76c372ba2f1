package core

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
)

// DefaultMaxImageSize is the largest image payload AddImage accepts.
const DefaultMaxImageSize = 5 * 1024 * 1024

// Config holds the dependencies of a Service. Zero values get defaults.
type Config struct {
	Logger       *slog.Logger
	Clock        func() time.Time
	NewID        func() string
	MaxImageSize int64
	ReadOnly     bool
}

// Service is the Note Store. It owns the in-memory note collection, is the
// single writer of the persisted collection, and mirrors every mutation to
// Storage with a full overwrite.
//
// The in-memory state is the source of truth for the session: storage write
// failures are logged and counted, never returned.
type Service struct {
	mu      sync.RWMutex
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string

	maxImageSize  int64
	readOnly      bool
	writeFailures int

	notes     []Note
	knownTags []string
	images    map[string]string
}

// NewService creates a Service backed by storage. Call Rehydrate before use
// to load the persisted state.
func NewService(storage Storage, cfg Config) *Service {
	s := &Service{
		storage:      storage,
		logger:       cfg.Logger,
		now:          cfg.Clock,
		newID:        cfg.NewID,
		maxImageSize: cfg.MaxImageSize,
		readOnly:     cfg.ReadOnly,
		notes:        []Note{},
		knownTags:    []string{},
		images:       map[string]string{},
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.maxImageSize <= 0 {
		s.maxImageSize = DefaultMaxImageSize
	}
	return s
}

// Rehydrate replaces the in-memory state with the persisted one. Absent or
// malformed data yields an empty collection; read errors are logged, never
// returned.
func (s *Service) Rehydrate(ctx context.Context) []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = s.loadNotes(ctx)

	var stored []string
	if s.load(ctx, KeyKnownTags, &stored) != nil {
		stored = nil
	}
	known := mergeTags(nil, stored)
	for _, n := range s.notes {
		known = mergeTags(known, n.Tags)
	}
	s.knownTags = known

	var images map[string]string
	if s.load(ctx, KeyImages, &images) != nil || images == nil {
		images = map[string]string{}
	}
	s.images = images

	s.logger.Debug("rehydrated store", "notes", len(s.notes), "known_tags", len(s.knownTags), "images", len(s.images))
	return cloneNotes(s.notes)
}

// Reload is Rehydrate for callers reacting to external changes.
func (s *Service) Reload(ctx context.Context) {
	s.Rehydrate(ctx)
}

// loadNotes decodes the stored collection note by note: one damaged entry
// never costs the others.
func (s *Service) loadNotes(ctx context.Context) []Note {
	var raws []json.RawMessage
	err := s.load(ctx, KeyNotes, &raws)
	if errors.Is(err, ErrKeyNotFound) {
		raws = nil
		err = s.load(ctx, keyLegacyNotes, &raws)
		if err == nil {
			s.logger.Info("loaded notes from legacy key", "key", keyLegacyNotes, "notes", len(raws))
		}
	}
	if err != nil {
		return []Note{}
	}

	out := make([]Note, 0, len(raws))
	for i, raw := range raws {
		n, repaired, err := decodeStoredNote(raw)
		if err != nil {
			s.logger.Warn("skipping malformed stored note", "index", i, "error", err)
			continue
		}
		if repaired {
			s.logger.Warn("stored note has an invalid timestamp, using fallback", "id", n.ID)
		}
		out = append(out, n.normalize())
	}
	return out
}

// load decodes key into v. Absent keys return ErrKeyNotFound; read and
// decode failures are logged and returned.
func (s *Service) load(ctx context.Context, key string, v any) error {
	data, err := s.storage.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return err
	}
	if err != nil {
		s.logger.Warn("failed to read storage, treating as empty", "key", key, "error", err)
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("malformed stored data, treating as empty", "key", key, "error", err)
		return err
	}
	return nil
}

// Create adds a note with the given content and returns it.
// Blank content is rejected with ErrValidation.
func (s *Service) Create(ctx context.Context, text string) (Note, error) {
	if strings.TrimSpace(text) == "" {
		return Note{}, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return Note{}, ErrReadOnly
	}

	now := NewTimestamp(s.now())
	n := Note{
		ID:        s.newID(),
		Content:   text,
		CreatedAt: now,
		UpdatedAt: now,
	}.normalize()

	s.notes = append([]Note{n}, s.notes...)
	s.persistNotes(ctx)
	s.rememberTags(ctx, n.Tags)

	s.logger.Debug("note created", "id", n.ID, "tags", n.Tags)
	return n.Clone(), nil
}

// Update replaces the content of the note with the given id, re-derives its
// tags and refreshes UpdatedAt. A missing id is a silent no-op reported by
// found == false.
func (s *Service) Update(ctx context.Context, id, text string) (note Note, found bool, err error) {
	if strings.TrimSpace(text) == "" {
		return Note{}, false, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return Note{}, false, ErrReadOnly
	}

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("update ignored, note not found", "id", id)
		return Note{}, false, nil
	}

	n := s.notes[i]
	n.Content = text
	n.UpdatedAt = NewTimestamp(s.now())
	n = n.normalize()
	s.notes[i] = n

	s.persistNotes(ctx)
	s.rememberTags(ctx, n.Tags)

	s.logger.Debug("note updated", "id", n.ID, "tags", n.Tags)
	return n.Clone(), true, nil
}

// Delete removes the note with the given id. Deleting an absent id is not an
// error; removed reports whether a note was dropped.
func (s *Service) Delete(ctx context.Context, id string) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return false, ErrReadOnly
	}

	i := s.indexOf(id)
	if i >= 0 {
		s.notes = slices.Delete(s.notes, i, i+1)
	}
	s.persistNotes(ctx)
	return i >= 0, nil
}

// List returns the in-memory collection, newest first by insertion. It never
// reads storage.
func (s *Service) List(ctx context.Context) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

// Get returns the note with the given id.
func (s *Service) Get(ctx context.Context, id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i].Clone(), true
}

// KnownTags returns every tag name ever used, in first-seen order.
func (s *Service) KnownTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.knownTags)
}

// Watch reloads the store whenever the storage reports an external change
// and forwards the event. It requires a Watchable storage.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.storage.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}

	in, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan Event)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-in:
				if !ok {
					return nil
				}
				switch e.Key {
				case KeyNotes, KeyKnownTags, KeyImages, keyLegacyNotes:
					s.logger.Info("external change detected, reloading", "key", e.Key, "type", e.Type)
					s.Reload(ctx)
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("watch loop failed", "error", err)
	}))

	return out, nil
}

func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

// rememberTags unions tags into the known-tags set and persists it when it
// grew. The set is never pruned.
func (s *Service) rememberTags(ctx context.Context, tags []string) {
	merged := mergeTags(s.knownTags, tags)
	if len(merged) == len(s.knownTags) {
		return
	}
	s.knownTags = merged
	s.persist(ctx, KeyKnownTags, s.knownTags)
}

func (s *Service) persistNotes(ctx context.Context) {
	s.persist(ctx, KeyNotes, s.notes)
}

func (s *Service) persistImages(ctx context.Context) {
	s.persist(ctx, KeyImages, s.images)
}

// persist overwrites key with the JSON encoding of v. Failures are logged;
// the in-memory state stays authoritative.
func (s *Service) persist(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err == nil {
		err = s.storage.Set(ctx, key, data)
	}
	if err != nil {
		s.writeFailures++
		s.logger.Error("failed to persist, change kept in memory only", "key", key, "error", err)
	}
}

func mergeTags(known, tags []string) []string {
	out := slices.Clone(known)
	if out == nil {
		out = []string{}
	}
	for _, t := range tags {
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
