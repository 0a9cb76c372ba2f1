package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/myflomo/pkg/adapters/memory"
	"github.com/aretw0/myflomo/pkg/core"
)

func TestStorage_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()

	_, err := s.Get(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "notes", []byte(`[]`)))
	got, err := s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Remove(ctx, "notes"))
	require.NoError(t, s.Remove(ctx, "notes"), "removing twice is fine")
	_, err = s.Get(ctx, "notes")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)
	assert.Equal(t, 3, s.Writes())
}

func TestStorage_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()

	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestStorage_FailWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()
	s.FailWrites = errors.New("disk full")

	assert.EqualError(t, s.Set(ctx, "k", nil), "disk full")
	assert.EqualError(t, s.Remove(ctx, "k"), "disk full")
	assert.Equal(t, "memory", s.ComponentType())
	assert.Equal(t, memory.StorageState{Keys: []string{}, Writes: 0}, s.State())
}
