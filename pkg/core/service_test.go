package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/myflomo/pkg/adapters/memory"
	"github.com/aretw0/myflomo/pkg/core"
)

func TestService_CreateRejectsBlankContent(t *testing.T) {
	svc, storage := newTestService(t)
	ctx := t.Context()

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, core.ErrValidation)
	}
	assert.Empty(t, svc.List(ctx))
	assert.Zero(t, storage.Writes())
}

func TestService_CreateAndFilterScenario(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := t.Context()

	first, err := svc.Create(ctx, "Buy milk #todo")
	require.NoError(t, err)
	assert.Equal(t, []string{"todo"}, first.Tags)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	require.Len(t, svc.List(ctx), 1)

	second, err := svc.Create(ctx, "Call mom #todo #family")
	require.NoError(t, err)

	var tagged []string
	for _, n := range svc.List(ctx) {
		if n.HasTag("todo") {
			tagged = append(tagged, n.ID)
		}
	}
	assert.Equal(t, []string{second.ID, first.ID}, tagged, "newest note comes first")
}

func TestService_Update(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, "draft #idea")
	require.NoError(t, err)

	updated, found, err := svc.Update(ctx, created.ID, "final #done #idea")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Greater(t, int64(updated.UpdatedAt), int64(created.UpdatedAt))
	assert.Equal(t, []string{"done", "idea"}, updated.Tags)

	got, ok := svc.Get(ctx, created.ID)
	require.True(t, ok)
	assert.Equal(t, updated, got)
}

func TestService_UpdateMissingIsNoop(t *testing.T) {
	svc, storage := newTestService(t)
	ctx := t.Context()

	_, err := svc.Create(ctx, "keep me #a")
	require.NoError(t, err)
	before := svc.List(ctx)
	writes := storage.Writes()

	_, found, err := svc.Update(ctx, "missing", "x")
	require.NoError(t, err)
	assert.False(t, found)

	if diff := cmp.Diff(before, svc.List(ctx)); diff != "" {
		t.Errorf("notes changed (-before +after):\n%s", diff)
	}
	assert.Equal(t, writes, storage.Writes())
}

func TestService_UpdateRejectsBlankContent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, "something")
	require.NoError(t, err)

	_, _, err = svc.Update(ctx, created.ID, "  ")
	assert.ErrorIs(t, err, core.ErrValidation)

	got, _ := svc.Get(ctx, created.ID)
	assert.Equal(t, "something", got.Content)
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := t.Context()

	n, err := svc.Create(ctx, "bye")
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, svc.List(ctx))
}

func TestService_ListReturnsCopies(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := t.Context()

	_, err := svc.Create(ctx, "#a original")
	require.NoError(t, err)

	list := svc.List(ctx)
	list[0].Content = "mutated"
	list[0].Tags[0] = "mutated"

	again := svc.List(ctx)
	assert.Equal(t, "#a original", again[0].Content)
	assert.Equal(t, []string{"a"}, again[0].Tags)
}

func TestService_RehydrateRoundTrip(t *testing.T) {
	svc, storage := newTestService(t)
	ctx := t.Context()

	for _, c := range []string{"one #a", "two #b", "three #a #c"} {
		_, err := svc.Create(ctx, c)
		require.NoError(t, err)
	}
	_, _, err := svc.Update(ctx, "note-2", "two edited #b #d")
	require.NoError(t, err)

	fresh := core.NewService(storage, core.Config{})
	got := fresh.Rehydrate(ctx)

	if diff := cmp.Diff(svc.List(ctx), got); diff != "" {
		t.Errorf("rehydrated notes differ (-want +got):\n%s", diff)
	}
	assert.Equal(t, svc.KnownTags(), fresh.KnownTags())
}

func TestService_RehydrateToleratesBadData(t *testing.T) {
	ctx := context.Background()

	cases := map[string]string{
		"not json":        `{{{`,
		"wrong shape":     `{"id":"x"}`,
		"object in array": `[1,2,3]`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			storage := memory.NewStorage()
			require.NoError(t, storage.Set(ctx, core.KeyNotes, []byte(payload)))

			svc := core.NewService(storage, core.Config{})
			assert.Empty(t, svc.Rehydrate(ctx))
		})
	}
}

func TestService_RehydrateKeepsNotesAroundDamagedEntries(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()
	stored := `[
		{"id":"good","content":"keep me #ok","createdAt":1714554000000,"updatedAt":1714554000000},
		{"id":"bad-date","content":"odd date","createdAt":"not a date","updatedAt":1714557600000},
		42,
		null
	]`
	require.NoError(t, storage.Set(ctx, core.KeyNotes, []byte(stored)))

	svc := core.NewService(storage, core.Config{Clock: stepClock(), NewID: seqIDs()})
	notes := svc.Rehydrate(ctx)
	require.Len(t, notes, 2)

	assert.Equal(t, "good", notes[0].ID)
	assert.Equal(t, []string{"ok"}, notes[0].Tags)
	assert.Equal(t, "bad-date", notes[1].ID)
	assert.Equal(t, core.NewTimestamp(baseTime.Add(time.Hour)), notes[1].CreatedAt, "createdAt falls back to updatedAt")

	_, err := svc.Create(ctx, "new note")
	require.NoError(t, err)

	reopened := core.NewService(storage, core.Config{})
	ids := []string{}
	for _, n := range reopened.Rehydrate(ctx) {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"note-1", "good", "bad-date"}, ids)
}

func TestService_RehydrateNormalizesLegacyData(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStorage()
	legacy := `[
		{"id":"a","content":"iso #old","tags":["stale"],"createdAt":"2024-05-01T09:00:00.000Z","updatedAt":"2024-05-01T10:00:00.000Z"},
		{"id":"b","content":"num","tags":[],"createdAt":1714554000000,"updatedAt":1714550000000}
	]`
	require.NoError(t, storage.Set(ctx, "myflomo-notes", []byte(legacy)))

	svc := core.NewService(storage, core.Config{})
	notes := svc.Rehydrate(ctx)
	require.Len(t, notes, 2)

	assert.Equal(t, core.NewTimestamp(baseTime), notes[0].CreatedAt)
	assert.Equal(t, core.NewTimestamp(baseTime.Add(time.Hour)), notes[0].UpdatedAt)
	assert.Equal(t, []string{"old"}, notes[0].Tags, "tags are re-derived from content")
	assert.Equal(t, notes[1].CreatedAt, notes[1].UpdatedAt, "updatedAt is clamped to createdAt")

	_, err := svc.Create(ctx, "new")
	require.NoError(t, err)
	raw, err := storage.Get(ctx, core.KeyNotes)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"createdAt":1714554000000`)
}

func TestService_WriteFailuresKeepMemoryState(t *testing.T) {
	ctx := t.Context()
	storage := memory.NewStorage()
	storage.FailWrites = errors.New("quota exceeded")
	svc := core.NewService(storage, core.Config{})

	n, err := svc.Create(ctx, "still here #x")
	require.NoError(t, err)

	got, ok := svc.Get(ctx, n.ID)
	require.True(t, ok)
	assert.Equal(t, n, got)

	state := svc.State().(core.ServiceState)
	assert.Equal(t, 2, state.WriteFailures, "notes and known tags both failed")
	assert.Equal(t, "memory", state.StorageType)
}

func TestService_KnownTagsAreNeverPruned(t *testing.T) {
	svc, storage := newTestService(t)
	ctx := t.Context()

	n, err := svc.Create(ctx, "#work #urgent")
	require.NoError(t, err)
	_, err = svc.Delete(ctx, n.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"work", "urgent"}, svc.KnownTags())

	raw, err := storage.Get(ctx, core.KeyKnownTags)
	require.NoError(t, err)
	assert.JSONEq(t, `["work","urgent"]`, string(raw))
}

func TestService_ReadOnly(t *testing.T) {
	ctx := t.Context()
	storage := memory.NewStorage()
	svc := core.NewService(storage, core.Config{ReadOnly: true})

	_, err := svc.Create(ctx, "x")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, _, err = svc.Update(ctx, "x", "y")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, err = svc.Delete(ctx, "x")
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, err = svc.AddImage(ctx, "image/png", []byte{1})
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.Zero(t, storage.Writes())
}

func TestService_WatchUnsupported(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Watch(t.Context())
	assert.ErrorIs(t, err, core.ErrWatchUnsupported)
}
