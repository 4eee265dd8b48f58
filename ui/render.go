package ui

import (
	"fmt"
	"strings"

	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-runewidth"

	"github.com/lepinkainen/workshopdl/progress"
)

const (
	nameWidth       = 30
	nameColumn      = 35
	recentNameWidth = 40
	itemBarWidth    = 30
	totalBarWidth   = 50
	recentLimit     = 5
)

// Title is the header shown above every frame
const Title = "STEAM WORKSHOP DOWNLOADER"

// Render draws a full frame for the snapshot. It has no side effects.
func Render(snap progress.Snapshot, total int) string {
	var b strings.Builder
	counts := snap.Counts()
	finished := counts.Finished()

	b.WriteString(HeaderStyle.Render(Title))
	b.WriteString("\n\n")

	b.WriteString(SectionStyle.Render("Total Progress:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d/%d items processed\n",
		newBar(totalBarWidth, "33").ViewAs(ratio(finished, total)), finished, total)
	fmt.Fprintf(&b, "%s %s\n",
		SuccessStyle.Render(fmt.Sprintf("%d success", counts.Completed)),
		ErrorStyle.Render(fmt.Sprintf("%d error", counts.Errored)))

	if pending := snap.Pending(); len(pending) > 0 {
		itemBar := newBar(itemBarWidth, "46")
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Current Downloads:"))
		b.WriteString("\n")
		for _, e := range pending {
			fmt.Fprintf(&b, "%s %s %s %d%%\n",
				runewidth.FillRight(truncate(e.Name(), nameWidth), nameColumn),
				statusStyle(e.Record.Status).Render("["+e.Record.Status.String()+"]"),
				itemBar.ViewAs(float64(e.Record.Progress)/100),
				e.Record.Progress)
		}
	}

	if recent := snap.RecentlyCompleted(recentLimit); len(recent) > 0 {
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Last completed:"))
		b.WriteString("\n")
		for _, e := range recent {
			b.WriteString(SuccessStyle.Render("✓ " + truncate(e.Name(), recentNameWidth)))
			b.WriteString("\n")
		}
	}

	if failed := snap.Errors(); len(failed) > 0 {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render("Failed items:"))
		b.WriteString("\n")
		for _, e := range failed {
			detail := e.Record.Detail
			if detail == "" {
				detail = "unknown error"
			}
			b.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ %s: %s", truncate(e.Name(), nameWidth), detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func newBar(width int, color string) bar.Model {
	return bar.New(
		bar.WithWidth(width),
		bar.WithoutPercentage(),
		bar.WithSolidFill(color),
	)
}

func ratio(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(n) / float64(total)
	if r > 1 {
		return 1
	}
	return r
}

// truncate shortens s to width cells, marking the cut with "..."
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "") + "..."
}
