// Package views holds the pure derivations a presentation layer renders
// from the current note list: filters, sorting, the activity heatmap and
// summary statistics. Inputs are never mutated.
package views

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/myflomo/pkg/core"
)

// FilterByTag keeps notes carrying tag. An empty tag returns notes as is.
func FilterByTag(notes []core.Note, tag string) []core.Note {
	if tag == "" {
		return notes
	}
	return filter(notes, func(n core.Note) bool { return n.HasTag(tag) })
}

// FilterByTagPattern keeps notes with at least one tag matching a
// doublestar glob such as "work/*" or "proj-{a,b}". An empty pattern returns
// notes as is; an invalid pattern matches nothing.
func FilterByTagPattern(notes []core.Note, pattern string) []core.Note {
	if pattern == "" {
		return notes
	}
	if !doublestar.ValidatePattern(pattern) {
		return []core.Note{}
	}
	return filter(notes, func(n core.Note) bool {
		return slices.ContainsFunc(n.Tags, func(tag string) bool {
			ok, _ := doublestar.Match(pattern, tag)
			return ok
		})
	})
}

// FilterBySearch keeps notes whose content or any tag contains query,
// case-insensitively. An empty query returns notes as is.
func FilterBySearch(notes []core.Note, query string) []core.Note {
	if query == "" {
		return notes
	}
	q := strings.ToLower(query)
	return filter(notes, func(n core.Note) bool {
		if strings.Contains(strings.ToLower(n.Content), q) {
			return true
		}
		return slices.ContainsFunc(n.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), q)
		})
	})
}

func filter(notes []core.Note, keep func(core.Note) bool) []core.Note {
	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
