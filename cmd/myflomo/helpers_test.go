package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/myflomo/pkg/core"
)

func TestMatchIDPrefix(t *testing.T) {
	notes := []core.Note{{ID: "abc123"}, {ID: "abd456"}, {ID: "xyz789"}}

	assert.Equal(t, "xyz789", matchIDPrefix(notes, "xy"))
	assert.Equal(t, "abc123", matchIDPrefix(notes, "abc"))
	assert.Equal(t, "ab", matchIDPrefix(notes, "ab"), "ambiguous prefix stays as typed")
	assert.Equal(t, "nope", matchIDPrefix(notes, "nope"))
}

func TestParseWindowEnd(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2024, 5, 15, 20, 0, 0, 0, time.UTC)

	got, err := parseWindowEnd("", loc, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-16", got.Format(time.DateOnly))

	got, err = parseWindowEnd("2024-03-01", loc, now)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 1, got.Day())

	_, err = parseWindowEnd("01/03/2024", loc, now)
	assert.Error(t, err)
}

func TestDetectMimeType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assert.Equal(t, "image/png", detectMimeType("a.png", png))
	assert.Equal(t, "image/svg+xml", detectMimeType("logo.SVG", []byte(`<?xml version="1.0"?><svg></svg>`)))
	assert.Equal(t, "text/plain; charset=utf-8", detectMimeType("notes.txt", []byte("hello")))
}

func TestDataURLMime(t *testing.T) {
	assert.Equal(t, "image/png", dataURLMime("data:image/png;base64,AAAA"))
	assert.Equal(t, "unknown", dataURLMime("https://example.com/x.png"))
}

func TestTrimHash(t *testing.T) {
	assert.Equal(t, "todo", trimHash("#todo"))
	assert.Equal(t, "todo", trimHash("todo"))
	assert.Equal(t, "", trimHash(""))
}
