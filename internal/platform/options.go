package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/myflomo/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterMemory = "memory"
)

// options holds the internal configuration for the MyFlomo service.
type options struct {
	storage core.Storage
	logger  *slog.Logger
	adapter string
	config  map[string]interface{}

	clock        func() time.Time
	newID        func() string
	maxImageSize int64
	welcomeNote  *bool
	location     *time.Location
}

// Option defines a functional option for configuring MyFlomo.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "",
		config:  make(map[string]interface{}),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the service and its storage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage injects a custom storage adapter (e.g. a test fake).
// If provided, adapter selection is skipped.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithAdapter selects the storage adapter by name: "fs", "sqlite" or
// "memory". Defaults to the vault config, then "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithDebounce sets how long the fs watcher waits for a burst of events on
// one key to settle.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.config["debounce"] = d
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the
// watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Mutations (create, update, delete, import, image add) return ErrReadOnly.
// 2. Initialization (mkdir, schema) is skipped.
// 3. The welcome note is never written.
// 4. Dev Safety Lock (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the vault is re-rooted into a temporary
// directory to prevent accidental data loss.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithClock overrides the time source used to stamp notes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithIDGenerator overrides the note id generator (uuid by default).
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithMaxImageSize sets the largest accepted image payload in bytes.
func WithMaxImageSize(n int64) Option {
	return func(o *options) {
		o.maxImageSize = n
	}
}

// WithWelcomeNote controls whether an empty store is seeded with a welcome
// note on startup.
func WithWelcomeNote(enabled bool) Option {
	return func(o *options) {
		o.welcomeNote = &enabled
	}
}

// WithLocation sets the time zone used for calendar-day views (heatmap,
// stats). Defaults to the vault config, then the local zone.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}
