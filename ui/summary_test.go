package ui

import (
	"strings"
	"testing"
	"time"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{61*time.Second + 900*time.Millisecond, "00:01:01"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "03:04:05"},
		{-time.Second, "00:00:00"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.input); got != tt.want {
			t.Errorf("FormatElapsed(%v): expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestSummary(t *testing.T) {
	out := Summary(RunReport{Total: 3, Succeeded: 2, Failed: 1, Elapsed: 75 * time.Second, TargetDir: "/data/mods"})

	for _, want := range []string{"Total number of items: 3", "Successfully downloaded: 2", "Failed: 1", "00:01:15", "/data/mods"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSummary_NoFailures(t *testing.T) {
	out := Summary(RunReport{Total: 1, Succeeded: 1, TargetDir: "/data/mods"})

	if strings.Contains(out, "Failed") {
		t.Errorf("Expected no failure line, got:\n%s", out)
	}
}
