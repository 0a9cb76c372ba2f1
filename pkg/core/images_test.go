package core_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/myflomo/pkg/adapters/memory"
	"github.com/aretw0/myflomo/pkg/core"
)

func TestService_AddImage(t *testing.T) {
	svc, storage := newTestService(t)
	ctx := t.Context()

	ref, err := svc.AddImage(ctx, "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, core.ImageScheme))
	assert.Equal(t, core.ImageRef([]byte("png-bytes")), ref)

	dataURL, ok := svc.Image(ref)
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,cG5nLWJ5dGVz", dataURL)

	again, err := svc.AddImage(ctx, "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, ref, again, "identical payloads share a reference")
	assert.Len(t, svc.Images(), 1)

	raw, err := storage.Get(ctx, core.KeyImages)
	require.NoError(t, err)
	assert.Contains(t, string(raw), ref)

	assert.Equal(t, "![image]("+ref+")", core.ImageMarkdown(ref))
}

func TestService_AddImageRejects(t *testing.T) {
	ctx := t.Context()
	svc := core.NewService(memory.NewStorage(), core.Config{MaxImageSize: 4})

	_, err := svc.AddImage(ctx, "text/plain", []byte("hi"))
	assert.ErrorIs(t, err, core.ErrImageType)

	_, err = svc.AddImage(ctx, "image/jpeg", bytes.Repeat([]byte{1}, 5))
	assert.ErrorIs(t, err, core.ErrImageTooLarge)

	assert.Empty(t, svc.Images())
}

func TestService_OrphanedImagesAreReportedNotDeleted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := t.Context()

	kept, err := svc.AddImage(ctx, "image/png", []byte("kept"))
	require.NoError(t, err)
	dropped, err := svc.AddImage(ctx, "image/png", []byte("dropped"))
	require.NoError(t, err)

	n, err := svc.Create(ctx, "two pics "+core.ImageMarkdown(kept)+" "+core.ImageMarkdown(dropped))
	require.NoError(t, err)
	assert.Empty(t, svc.OrphanedImages())

	_, _, err = svc.Update(ctx, n.ID, "one pic "+core.ImageMarkdown(kept))
	require.NoError(t, err)

	assert.Equal(t, []string{dropped}, svc.OrphanedImages())
	_, ok := svc.Image(dropped)
	assert.True(t, ok, "orphans stay in the bucket")
}
