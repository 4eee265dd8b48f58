package download

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fakeItem scripts how the fake steamcmd behaves for one workshop id
type fakeItem struct {
	lines    []string
	exitCode int
	stderr   string
	files    map[string]string // files to stage under the source dir
	noOutput bool              // exit without staging anything
	delay    time.Duration
	err      error
}

// fakeRunner stands in for steamcmd. It reads the install dir and ids from
// the argument list the same way steamcmd would.
type fakeRunner struct {
	mu    sync.Mutex
	items map[string]fakeItem
	calls []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, onLine func(string)) (RunResult, error) {
	installDir, appID, workshopID := parseArgs(args)

	f.mu.Lock()
	f.calls = append(f.calls, workshopID)
	item := f.items[workshopID]
	f.mu.Unlock()

	if item.err != nil {
		return RunResult{}, item.err
	}

	for _, line := range item.lines {
		onLine(line)
	}

	if item.delay > 0 {
		select {
		case <-time.After(item.delay):
		case <-ctx.Done():
			return RunResult{ExitCode: -1}, ctx.Err()
		}
	}

	if item.exitCode == 0 && !item.noOutput {
		src := filepath.Join(installDir, "steamapps", "workshop", "content", appID, workshopID)
		if err := os.MkdirAll(src, 0755); err != nil {
			return RunResult{}, err
		}
		for rel, content := range item.files {
			p := filepath.Join(src, rel)
			if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
				return RunResult{}, err
			}
			if err := os.WriteFile(p, []byte(content), 0644); err != nil {
				return RunResult{}, err
			}
		}
	}

	return RunResult{ExitCode: item.exitCode, Stderr: item.stderr}, nil
}

func parseArgs(args []string) (installDir, appID, workshopID string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "+force_install_dir":
			installDir = args[i+1]
		case "+workshop_download_item":
			appID, workshopID = args[i+1], args[i+2]
		}
	}
	return
}

var steamcmdLines = []string{
	"Redirecting stderr to 'logs/stderr.txt'",
	"Logging in user 'anonymous' to Steam Public...OK",
	"Downloading item 111 ...",
	" Update state (0x61) downloading, progress: 12.50 (1024 / 8192)",
	" Update state (0x61) downloading, progress: 75.00 (6144 / 8192)",
	"Success. Downloaded item 111 to \"/steam/steamapps/workshop/content/730/111\" (8192 bytes)",
}
