package download

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of a per-item download failure
type ErrorType int

const (
	ErrorToolFailure ErrorType = iota
	ErrorContentMissing
	ErrorFileSystem
	ErrorCancelled
	ErrorLedger
	ErrorUnknown
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorToolFailure:
		return "tool_failure"
	case ErrorContentMissing:
		return "content_missing"
	case ErrorFileSystem:
		return "filesystem_error"
	case ErrorCancelled:
		return "cancelled"
	case ErrorLedger:
		return "ledger_error"
	default:
		return "unknown"
	}
}

// DownloadError describes why a single workshop item failed
type DownloadError struct {
	Type     ErrorType
	ItemID   string
	Message  string
	ExitCode int    // steamcmd exit code, only for ErrorToolFailure
	Stderr   string // captured steamcmd stderr
	Cause    error
}

// Error implements the error interface
func (de *DownloadError) Error() string {
	if de.Cause != nil {
		return fmt.Sprintf("%s: %v", de.Message, de.Cause)
	}
	return de.Message
}

// Unwrap returns the underlying cause error
func (de *DownloadError) Unwrap() error {
	return de.Cause
}

func newError(t ErrorType, itemID, message string, cause error) *DownloadError {
	return &DownloadError{Type: t, ItemID: itemID, Message: message, Cause: cause}
}

// exitError builds the error for a steamcmd run that exited non-zero
func exitError(itemID string, code int, stderr string) *DownloadError {
	msg := fmt.Sprintf("steamcmd exited with code %d", code)
	if tail := lastLine(stderr); tail != "" {
		msg += ": " + tail
	}
	return &DownloadError{
		Type:     ErrorToolFailure,
		ItemID:   itemID,
		Message:  msg,
		ExitCode: code,
		Stderr:   stderr,
	}
}

// asDownloadError converts any error into a *DownloadError for itemID
func asDownloadError(itemID string, err error) *DownloadError {
	var de *DownloadError
	if errors.As(err, &de) {
		return de
	}
	return newError(ErrorUnknown, itemID, "unexpected failure", err)
}

// lastLine returns the last non-empty line of s
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
