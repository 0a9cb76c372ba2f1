package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/myflomo/internal/platform"
	"github.com/aretw0/myflomo/pkg/adapters/fs"
	"github.com/aretw0/myflomo/pkg/adapters/memory"
	"github.com/aretw0/myflomo/pkg/adapters/sqlite"
	"github.com/aretw0/myflomo/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("Default Adapter Creates Directory", func(t *testing.T) {
		vaultPath := filepath.Join(t.TempDir(), "vault")

		storage, err := platform.Init(vaultPath, platform.WithForceTemp(true))
		require.NoError(t, err)

		fsStorage, ok := storage.(*fs.Storage)
		require.True(t, ok, "expected fs storage, got %T", storage)
		assert.Equal(t, vaultPath, fsStorage.Path)
		assert.DirExists(t, vaultPath)
	})

	t.Run("MustExist Fails if Directory Missing", func(t *testing.T) {
		vaultPath := filepath.Join(t.TempDir(), "missing")

		_, err := platform.Init(vaultPath, platform.WithMustExist(true), platform.WithForceTemp(true))
		assert.Error(t, err)
	})

	t.Run("SQLite Adapter Creates Database", func(t *testing.T) {
		vaultPath := filepath.Join(t.TempDir(), "vault")

		storage, err := platform.Init(vaultPath, platform.WithAdapter(platform.AdapterSQLite), platform.WithForceTemp(true))
		require.NoError(t, err)
		db, ok := storage.(*sqlite.Storage)
		require.True(t, ok, "expected sqlite storage, got %T", storage)
		defer db.Close()

		assert.FileExists(t, filepath.Join(vaultPath, ".myflomo", sqlite.DefaultFileName))
	})

	t.Run("Adapter From Config", func(t *testing.T) {
		vaultPath := t.TempDir()
		require.NoError(t, platform.WriteConfig(vaultPath, platform.FileConfig{Adapter: platform.AdapterMemory}))

		storage, err := platform.Init(vaultPath, platform.WithForceTemp(true))
		require.NoError(t, err)
		assert.IsType(t, &memory.Storage{}, storage)
	})

	t.Run("Option Overrides Config", func(t *testing.T) {
		vaultPath := t.TempDir()
		require.NoError(t, platform.WriteConfig(vaultPath, platform.FileConfig{Adapter: platform.AdapterSQLite}))

		storage, err := platform.Init(vaultPath, platform.WithAdapter(platform.AdapterFS), platform.WithForceTemp(true))
		require.NoError(t, err)
		assert.IsType(t, &fs.Storage{}, storage)
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		_, err := platform.Init(t.TempDir(), platform.WithAdapter("s3"), platform.WithForceTemp(true))
		assert.ErrorContains(t, err, "unknown adapter")
	})

	t.Run("Injected Storage Wins", func(t *testing.T) {
		injected := memory.NewStorage()

		storage, err := platform.Init(t.TempDir(), platform.WithStorage(injected), platform.WithAdapter("s3"))
		require.NoError(t, err)
		assert.Same(t, injected, storage)
	})

	t.Run("ReadOnly Requires Existing Vault", func(t *testing.T) {
		vaultPath := filepath.Join(t.TempDir(), "absent")

		_, err := platform.Init(vaultPath, platform.WithReadOnly(true))
		require.Error(t, err)
		_, statErr := os.Stat(vaultPath)
		assert.True(t, os.IsNotExist(statErr), "read-only init must not create the vault")
	})
}

func TestInit_ReadOnlyStorageRejectsWrites(t *testing.T) {
	vaultPath := t.TempDir()

	storage, err := platform.Init(vaultPath, platform.WithReadOnly(true))
	require.NoError(t, err)

	err = storage.Set(t.Context(), core.KeyNotes, []byte("[]"))
	assert.ErrorIs(t, err, core.ErrReadOnly)
}
