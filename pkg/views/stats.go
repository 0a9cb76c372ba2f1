package views

import (
	"time"

	"github.com/aretw0/myflomo/pkg/core"
	"github.com/aretw0/myflomo/pkg/tagindex"
)

// Stats summarizes a note collection.
type Stats struct {
	TotalNotes int `json:"total_notes"`
	TotalTags  int `json:"total_tags"`
	ActiveDays int `json:"active_days"`
}

// ComputeStats counts notes, distinct tags in use, and distinct calendar
// days (in loc) on which at least one note was created.
func ComputeStats(notes []core.Note, loc *time.Location) Stats {
	days := make(map[string]struct{})
	for _, n := range notes {
		days[dayKey(n.CreatedAt.In(loc))] = struct{}{}
	}
	return Stats{
		TotalNotes: len(notes),
		TotalTags:  len(tagindex.ComputeTagCounts(notes)),
		ActiveDays: len(days),
	}
}
