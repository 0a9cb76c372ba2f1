package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/aretw0/myflomo/pkg/core"
)

const (
	// FileExt is appended to every key to form its file name.
	FileExt = ".json"

	// DefaultDebounce coalesces the burst of events a single atomic write
	// produces (create temp, write, rename).
	DefaultDebounce = 50 * time.Millisecond

	filePerm = 0644
	dirPerm  = 0755
)

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	Debounce     time.Duration
	Logger       *slog.Logger
	ErrorHandler func(error)
}

// Storage implements core.Storage with one JSON file per key inside a
// directory. Writes are atomic; external edits are reported by Watch.
type Storage struct {
	Path   string
	config Config
	logger *slog.Logger

	mu            sync.RWMutex
	known         map[string]uint64 // key -> hash of the last content this process wrote or observed
	watcherActive bool
	lastEvent     *time.Time
}

// NewStorage creates a filesystem storage rooted at config.Path.
func NewStorage(config Config) *Storage {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	return &Storage{
		Path:   config.Path,
		config: config,
		logger: logger,
		known:  make(map[string]uint64),
	}
}

// Initialize ensures the storage directory exists.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("storage path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("storage path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, dirPerm); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

// Get reads the value of key. A missing file is core.ErrKeyNotFound.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set atomically overwrites the file for key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(path, value, filePerm); err != nil {
		return err
	}
	s.known[key] = xxhash.Sum64(value)

	s.logger.Debug("stored key", "key", key, "bytes", len(value))
	return nil
}

// Remove deletes the file for key. A missing file is not an error.
func (s *Storage) Remove(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	delete(s.known, key)
	return nil
}

// Keys lists the keys currently stored, in directory order.
func (s *Storage) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if key, ok := keyFromFile(e.Name()); ok && !e.IsDir() {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *Storage) keyPath(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\:`) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.Path, key+FileExt), nil
}

// keyFromFile maps a directory entry back to its key. Hidden files (temp
// files, config dirs) are not keys.
func keyFromFile(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, FileExt) {
		return "", false
	}
	key := strings.TrimSuffix(name, FileExt)
	return key, key != ""
}

var (
	_ core.Storage     = (*Storage)(nil)
	_ core.Initializer = (*Storage)(nil)
	_ core.Watchable   = (*Storage)(nil)
)
