// Package tagindex derives tag usage statistics from notes and ranks
// autocomplete candidates.
package tagindex

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aretw0/myflomo/pkg/core"
)

// TagCount is a tag with the number of notes carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ComputeTagCounts maps every tag to the number of notes containing it.
// A tag repeated inside one note counts once for that note.
func ComputeTagCounts(notes []core.Note) map[string]int {
	counts := make(map[string]int)
	for _, n := range notes {
		for _, tag := range slices.Compact(slices.Sorted(slices.Values(n.Tags))) {
			counts[tag]++
		}
	}
	return counts
}

// Ranked orders counts for a tag cloud: most used first, ties by name.
func Ranked(counts map[string]int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for tag, c := range counts {
		out = append(out, TagCount{Tag: tag, Count: c})
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	return out
}

// Suggest returns autocomplete candidates for prefix from known.
//
// An empty prefix returns every known tag in stored order. Otherwise only
// tags containing prefix (case-insensitively) are returned; tags starting
// with prefix come before tags merely containing it, and each group is
// ordered case-insensitively.
func Suggest(prefix string, known []string) []string {
	if prefix == "" {
		return slices.Clone(known)
	}

	p := strings.ToLower(prefix)
	var out []string
	for _, tag := range known {
		if strings.Contains(strings.ToLower(tag), p) {
			out = append(out, tag)
		}
	}

	slices.SortStableFunc(out, func(a, b string) int {
		la, lb := strings.ToLower(a), strings.ToLower(b)
		aStarts, bStarts := strings.HasPrefix(la, p), strings.HasPrefix(lb, p)
		switch {
		case aStarts && !bStarts:
			return -1
		case !aStarts && bStarts:
			return 1
		}
		return cmp.Compare(la, lb)
	})
	return out
}
