package workshop

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// MetadataFile is the optional descriptor some games ship inside workshop items
const MetadataFile = "workshop.json"

type itemMetadata struct {
	Title string `json:"title"`
}

// ReadTitle returns the item title from workshop.json in sourceDir.
// Missing or malformed metadata is not an error, it just yields no title.
func ReadTitle(sourceDir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(sourceDir, MetadataFile))
	if err != nil {
		return "", false
	}

	var meta itemMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", false
	}

	title := strings.TrimSpace(meta.Title)
	return title, title != ""
}
