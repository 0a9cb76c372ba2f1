package views

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/aretw0/myflomo/pkg/core"
)

// SortKey selects the timestamp notes are ordered by.
type SortKey string

const (
	ByCreated SortKey = "create"
	ByUpdated SortKey = "edit"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortOption is a key and direction pair, written "create-desc" etc.
type SortOption struct {
	Key       SortKey
	Direction Direction
}

// DefaultSort lists newest notes first.
var DefaultSort = SortOption{Key: ByCreated, Direction: Desc}

func (o SortOption) String() string {
	return string(o.Key) + "-" + string(o.Direction)
}

// SortOptions lists every accepted option in menu order.
func SortOptions() []SortOption {
	return []SortOption{
		{ByCreated, Desc},
		{ByCreated, Asc},
		{ByUpdated, Desc},
		{ByUpdated, Asc},
	}
}

// ParseSortOption parses "create-desc", "create-asc", "edit-desc" or
// "edit-asc". The empty string yields DefaultSort.
func ParseSortOption(s string) (SortOption, error) {
	if s == "" {
		return DefaultSort, nil
	}
	for _, o := range SortOptions() {
		if o.String() == s {
			return o, nil
		}
	}
	return SortOption{}, fmt.Errorf("unknown sort option %q", s)
}

// SortByDate returns a copy of notes stably sorted by the chosen timestamp.
// Notes with equal timestamps keep their relative order.
func SortByDate(notes []core.Note, key SortKey, dir Direction) []core.Note {
	field := func(n core.Note) core.Timestamp { return n.CreatedAt }
	if key == ByUpdated {
		field = func(n core.Note) core.Timestamp { return n.UpdatedAt }
	}

	out := slices.Clone(notes)
	slices.SortStableFunc(out, func(a, b core.Note) int {
		c := cmp.Compare(field(a), field(b))
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

// Query is the list view pipeline: tag filter, tag pattern, search, sort.
type Query struct {
	Tag        string
	TagPattern string
	Search     string
	Sort       SortOption
}

// Apply runs the pipeline over notes. A zero Sort means DefaultSort.
func (q Query) Apply(notes []core.Note) []core.Note {
	out := FilterByTag(notes, q.Tag)
	out = FilterByTagPattern(out, q.TagPattern)
	out = FilterBySearch(out, q.Search)

	order := q.Sort
	if order == (SortOption{}) {
		order = DefaultSort
	}
	return SortByDate(out, order.Key, order.Direction)
}
