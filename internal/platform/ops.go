package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/myflomo/pkg/adapters/fs"
	"github.com/aretw0/myflomo/pkg/adapters/memory"
	"github.com/aretw0/myflomo/pkg/adapters/sqlite"
	"github.com/aretw0/myflomo/pkg/core"
)

// Init prepares the storage for the vault at uri and returns it initialized.
// The 'uri' argument is adapter-specific: a directory for 'fs' and 'sqlite',
// ignored for 'memory'.
func Init(uri string, opts ...Option) (core.Storage, error) {
	o := applyOptions(opts)
	storage, _, _, err := initStorage(context.Background(), uri, o)
	return storage, err
}

// initStorage resolves the vault path, loads its config and builds the
// selected adapter.
func initStorage(ctx context.Context, uri string, o *options) (core.Storage, string, FileConfig, error) {
	isReadOnly, _ := o.config["read_only"].(bool)
	tempDir, _ := o.config["temp_dir"].(bool)

	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// ReadOnly is inherently safe; explicit opt-out disables the sandbox.
	bypassSafety := isReadOnly || !devSafety
	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveVaultPath(uri, useTemp)

	if o.logger != nil && useTemp {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", uri, "resolved_path", resolvedPath)
	}

	cfg, err := LoadConfig(resolvedPath)
	if err != nil {
		return nil, "", cfg, err
	}

	if o.storage != nil {
		return o.storage, resolvedPath, cfg, initialize(ctx, o.storage, isReadOnly)
	}

	adapter := o.adapter
	if adapter == "" {
		adapter = cfg.Adapter
	}
	if adapter == "" {
		adapter = AdapterFS
	}

	var storage core.Storage
	switch adapter {
	case AdapterFS:
		storage = initFS(resolvedPath, o, isReadOnly)
	case AdapterSQLite:
		storage, err = initSQLite(resolvedPath, o, isReadOnly)
	case AdapterMemory:
		storage = memory.NewStorage()
	default:
		return nil, "", cfg, fmt.Errorf("unknown adapter: %s", adapter)
	}
	if err != nil {
		return nil, "", cfg, err
	}

	if o.logger != nil {
		o.logger.Debug("storage selected", "adapter", adapter, "path", resolvedPath, "read_only", isReadOnly)
	}

	if err := initialize(ctx, storage, isReadOnly); err != nil {
		return nil, "", cfg, err
	}
	return storage, resolvedPath, cfg, nil
}

func initialize(ctx context.Context, storage core.Storage, readOnly bool) error {
	in, ok := storage.(core.Initializer)
	if !ok {
		return nil
	}
	if err := in.Initialize(ctx); err != nil {
		if readOnly {
			return fmt.Errorf("read-only vault unavailable: %w", err)
		}
		return err
	}
	return nil
}

// initFS handles the configuration of the filesystem adapter.
func initFS(path string, o *options, readOnly bool) *fs.Storage {
	mustExist, _ := o.config["must_exist"].(bool)
	debounce, _ := o.config["debounce"].(time.Duration)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.NewStorage(fs.Config{
		Path:         path,
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Debounce:     debounce,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
}

// initSQLite opens the vault database under the system directory.
func initSQLite(path string, o *options, readOnly bool) (*sqlite.Storage, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	if !readOnly {
		if err := ensureSystemDir(path, mustExist); err != nil {
			return nil, err
		}
	}
	return sqlite.Open(sqlite.Config{
		Path:     filepath.Join(path, SystemDir, sqlite.DefaultFileName),
		ReadOnly: readOnly,
		Logger:   o.logger,
	})
}

func ensureSystemDir(path string, mustExist bool) error {
	if mustExist {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("vault path does not exist: %s", path)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Join(path, SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", SystemDir, err)
	}
	return nil
}
