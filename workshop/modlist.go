package workshop

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrModsFileNotFound = errors.New("mods file not found")
	ErrEmptyModsFile    = errors.New("mods file is empty")
	ErrInvalidAppURL    = errors.New("first line must be a valid Steam store URL")
	ErrNoWorkshopIDs    = errors.New("no valid workshop id found")
)

// ModList is the parsed content of a mods file
type ModList struct {
	AppID       string
	WorkshopIDs []string
	Skipped     []string // lines that were not workshop item URLs
	Duplicates  int      // ids listed more than once
}

// ReadModsFile reads and parses a mods file from disk
func ReadModsFile(path string) (*ModList, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModsFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open mods file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseModList(f)
}

// ParseModList parses mods file content. The first non-blank line must be a
// store page URL, every following non-blank line a workshop item URL.
func ParseModList(r io.Reader) (*ModList, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mods file: %w", err)
	}

	if len(lines) == 0 {
		return nil, ErrEmptyModsFile
	}

	// Tolerate a UTF-8 BOM written by Windows editors
	appLine := strings.TrimPrefix(lines[0], "\ufeff")
	appID, ok := ExtractAppID(appLine)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAppURL, appLine)
	}

	list := &ModList{AppID: appID}
	seen := make(map[string]bool)
	for _, line := range lines[1:] {
		id, ok := ExtractWorkshopID(line)
		if !ok {
			list.Skipped = append(list.Skipped, line)
			continue
		}
		if seen[id] {
			list.Duplicates++
			continue
		}
		seen[id] = true
		list.WorkshopIDs = append(list.WorkshopIDs, id)
	}

	if len(list.WorkshopIDs) == 0 {
		return list, ErrNoWorkshopIDs
	}

	return list, nil
}
