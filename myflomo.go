package myflomo

import (
	"log/slog"
	"time"

	"github.com/aretw0/myflomo/internal/platform"
	"github.com/aretw0/myflomo/pkg/core"
)

// --- Types ---

// Vault is an opened note store with its view settings.
type Vault = platform.Vault

// FileConfig is the optional vault config file (.myflomo/config.yaml).
type FileConfig = platform.FileConfig

// --- Configuration ---

// Option defines a functional option for configuring MyFlomo.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStorage injects a custom storage adapter.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithReadOnly makes every mutation fail with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temp-dir sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithClock overrides the time source used to stamp notes.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIDGenerator overrides the note id generator.
func WithIDGenerator(fn func() string) Option {
	return platform.WithIDGenerator(fn)
}

// WithWelcomeNote seeds an empty store with a welcome note.
func WithWelcomeNote(enabled bool) Option {
	return platform.WithWelcomeNote(enabled)
}

// WithMaxImageSize sets the largest accepted image payload in bytes.
func WithMaxImageSize(n int64) Option {
	return platform.WithMaxImageSize(n)
}

// WithLocation sets the time zone for calendar-day views.
func WithLocation(loc *time.Location) Option {
	return platform.WithLocation(loc)
}

// WithDebounce sets the fs watcher debounce window.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithWatcherErrorHandler registers a callback for watch loop errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the vault at path and returns it rehydrated.
func New(path string, opts ...Option) (*Vault, error) {
	return platform.New(path, opts...)
}

// Init prepares and returns the storage for path without loading notes.
func Init(path string, opts ...Option) (core.Storage, error) {
	return platform.Init(path, opts...)
}

// --- Config ---

// LoadConfig reads <vault>/.myflomo/config.yaml; a missing file is the zero config.
func LoadConfig(vault string) (FileConfig, error) {
	return platform.LoadConfig(vault)
}

// WriteConfig writes <vault>/.myflomo/config.yaml.
func WriteConfig(vault string, cfg FileConfig) error {
	return platform.WriteConfig(vault, cfg)
}

// --- Safety & Utils ---

// ResolveVaultPath determines the actual path for the vault based on safety rules.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	return platform.ResolveVaultPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindVaultRoot recursively looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
