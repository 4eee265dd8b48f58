package download

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait blocks on output pipes after cancellation
const waitDelay = 5 * time.Second

// RunResult is the outcome of a finished tool process
type RunResult struct {
	ExitCode int
	Stderr   string
}

// Runner launches the external download tool and streams its stdout lines
type Runner interface {
	Run(ctx context.Context, name string, args []string, onLine func(string)) (RunResult, error)
}

// ExecRunner runs the tool as a child process
type ExecRunner struct{}

// Run starts name with args and calls onLine for every stdout line as it
// arrives. A non-zero exit code is returned in RunResult; the error is only
// set when the process could not be started, read, or was cancelled.
func (ExecRunner) Run(ctx context.Context, name string, args []string, onLine func(string)) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to attach stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return RunResult{}, fmt.Errorf("failed to start %s: %w", name, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(scanLinesCR)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	scanErr := scanner.Err()
	// Keep the pipe drained so the child cannot block on a full buffer
	_, _ = io.Copy(io.Discard, stdout)

	waitErr := cmd.Wait()
	result := RunResult{ExitCode: cmd.ProcessState.ExitCode(), Stderr: stderr.String()}

	if ctx.Err() != nil {
		return result, ctx.Err()
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return result, fmt.Errorf("failed waiting for %s: %w", name, waitErr)
		}
	}
	if scanErr != nil {
		return result, fmt.Errorf("failed reading %s output: %w", name, scanErr)
	}

	return result, nil
}

// scanLinesCR is bufio.ScanLines that also treats a bare '\r' as a line end,
// since steamcmd redraws its progress line with carriage returns.
func scanLinesCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' {
			if i+1 < len(data) && data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			if i+1 == len(data) && !atEOF {
				// Could be the first half of \r\n, wait for more
				return 0, nil, nil
			}
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
