package download

import "strings"

// LineKind is what a line of tool output says about progress
type LineKind int

const (
	LineNone LineKind = iota
	LineProgress
	LineSuccess
)

// Classifier maps a raw output line to a LineKind. Progress inferred this way
// is approximate; steamcmd has no machine-readable progress channel.
type Classifier func(line string) LineKind

const (
	progressStep = 5
	downloadCap  = 90
	movingMark   = 95
)

// SteamCMDClassifier recognises the loose progress and success markers in
// steamcmd output
func SteamCMDClassifier(line string) LineKind {
	if strings.Contains(line, "Success") {
		return LineSuccess
	}
	if strings.Contains(line, "Update state") || strings.Contains(strings.ToLower(line), "download") {
		return LineProgress
	}
	return LineNone
}

// advance returns the new progress value for a line of the given kind
func advance(current int, kind LineKind) int {
	switch kind {
	case LineProgress:
		return min(current+progressStep, downloadCap)
	case LineSuccess:
		return max(current, downloadCap)
	default:
		return current
	}
}
