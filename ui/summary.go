package ui

import (
	"fmt"
	"strings"
	"time"
)

// RunReport is the data shown once the batch is over
type RunReport struct {
	Total     int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
	TargetDir string
}

// FormatElapsed renders d as HH:MM:SS
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// Summary renders the final report
func Summary(r RunReport) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("PROCESS COMPLETED"))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("ℹ Total number of items: %d", r.Total)))
	b.WriteString("\n")
	b.WriteString(SuccessStyle.Render(fmt.Sprintf("✓ Successfully downloaded: %d", r.Succeeded)))
	b.WriteString("\n")
	if r.Failed > 0 {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ Failed: %d", r.Failed)))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render("ℹ Total elapsed time: " + FormatElapsed(r.Elapsed)))
	b.WriteString("\n")
	b.WriteString(SuccessStyle.Render("✓ Items have been moved to: " + r.TargetDir))
	b.WriteString("\n")
	return b.String()
}
