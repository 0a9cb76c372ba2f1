package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/aretw0/myflomo/pkg/core"
	"github.com/aretw0/myflomo/pkg/tagindex"
	"github.com/aretw0/myflomo/pkg/views"
)

const previewWidth = 60

var (
	idStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#30a14e")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
	headStyle = lipgloss.NewStyle().Bold(true)

	// heatmap shades by views.Level, empty to busiest
	levelStyles = [5]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ebedf0")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#9be9a8")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#40c463")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#30a14e")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#216e39")),
	}
)

// preview flattens content to one line and truncates it to width cells.
func preview(content string, width int) string {
	line := strings.Join(strings.Fields(content), " ")
	return runewidth.Truncate(line, width, "...")
}

func formatTime(ts core.Timestamp, loc *time.Location) string {
	return ts.In(loc).Format("2006-01-02 15:04")
}

// renderNoteLine is the one-line form used by list.
func renderNoteLine(n core.Note, loc *time.Location) string {
	return fmt.Sprintf("%s  %s  %s",
		idStyle.Render(shortID(n.ID)),
		dimStyle.Render(formatTime(n.CreatedAt, loc)),
		preview(n.Content, previewWidth),
	)
}

// renderNote is the full form used by show.
func renderNote(n core.Note, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", headStyle.Render("id:"), n.ID)
	fmt.Fprintf(&b, "%s %s\n", headStyle.Render("created:"), formatTime(n.CreatedAt, loc))
	if n.UpdatedAt != n.CreatedAt {
		fmt.Fprintf(&b, "%s %s\n", headStyle.Render("edited:"), formatTime(n.UpdatedAt, loc))
	}
	if len(n.Tags) > 0 {
		tags := make([]string, len(n.Tags))
		for i, t := range n.Tags {
			tags[i] = tagStyle.Render("#" + t)
		}
		fmt.Fprintf(&b, "%s %s\n", headStyle.Render("tags:"), strings.Join(tags, " "))
	}
	b.WriteString("\n")
	b.WriteString(n.Content)
	b.WriteString("\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

var weekdayLabels = [7]string{"Mon", "", "Wed", "", "Fri", "", "Sun"}

// renderHeatmap draws the grid with one row per weekday, Monday first, and
// one column per week, oldest on the left.
func renderHeatmap(h views.Heatmap) string {
	var b strings.Builder
	for row := range 7 {
		fmt.Fprintf(&b, "%-4s", weekdayLabels[row])
		for _, col := range h.Columns {
			cell := col[row]
			b.WriteString(levelStyles[views.Level(cell.Count)].Render("■"))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	first := h.Start
	last := first.AddDate(0, 0, len(h.Columns)*7-1)
	fmt.Fprintf(&b, "%d notes from %s to %s\n", h.Total(), first.Format(time.DateOnly), last.Format(time.DateOnly))
	return b.String()
}

// renderTagCloud lists tags most used first, padded to a common width.
func renderTagCloud(ranked []tagindex.TagCount) string {
	width := 0
	for _, tc := range ranked {
		width = max(width, runewidth.StringWidth(tc.Tag)+1)
	}

	var b strings.Builder
	for _, tc := range ranked {
		label := runewidth.FillRight("#"+tc.Tag, width)
		fmt.Fprintf(&b, "%s  %d\n", tagStyle.Render(label), tc.Count)
	}
	return b.String()
}

func renderStats(s views.Stats) string {
	return fmt.Sprintf("%s %d\n%s %d\n%s %d\n",
		headStyle.Render("notes:"), s.TotalNotes,
		headStyle.Render("tags:"), s.TotalTags,
		headStyle.Render("days:"), s.ActiveDays,
	)
}
