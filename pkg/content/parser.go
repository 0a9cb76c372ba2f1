// Package content extracts structured tokens (tags and image references)
// from raw note text.
//
// A tag is a '#' immediately followed by a non-whitespace, non-'#' character,
// wherever it appears: "买牛奶#todo" carries the tag "todo". The tag runs
// until the next whitespace, so "#a#b" is the single tag "a#b" rather than
// two tags.
package content

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagPattern   = regexp.MustCompile(`#([^\s\p{Z}#][^\s\p{Z}]*)`)
	imagePattern = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
)

// ImageRef is an image embedded in note content as ![Alt](Ref).
type ImageRef struct {
	Alt string
	Ref string
}

// ExtractTags returns the tags found in s without their leading '#',
// deduplicated, in order of first occurrence. It never returns nil.
func ExtractTags(s string) []string {
	matches := tagPattern.FindAllStringSubmatch(s, -1)
	tags := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		tag := m[1]
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// ExtractImageReferences returns every ![alt](ref) in s, left to right.
// Repeated references are kept.
func ExtractImageReferences(s string) []ImageRef {
	matches := imagePattern.FindAllStringSubmatch(s, -1)
	refs := make([]ImageRef, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, ImageRef{Alt: m[1], Ref: m[2]})
	}
	return refs
}

// StripTags removes every tag token from s and trims the result.
// Display only; the stripped text is never persisted.
func StripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// CountCharacters counts user-visible characters (runes), so CJK text counts
// one per character.
func CountCharacters(s string) int {
	return utf8.RuneCountInString(s)
}
