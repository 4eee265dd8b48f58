package workshop

import "strings"

const (
	storeAppMarker    = "store.steampowered.com/app"
	filedetailsMarker = "steamcommunity.com/sharedfiles/filedetails"
	idParam           = "id="
)

// ExtractAppID returns the application id from a Steam store page URL such as
// https://store.steampowered.com/app/730/CounterStrike_2/
func ExtractAppID(url string) (string, bool) {
	if !strings.Contains(url, storeAppMarker) {
		return "", false
	}

	parts := strings.Split(url, "/")
	for i, part := range parts {
		if part != "app" || i+1 >= len(parts) {
			continue
		}
		id := parts[i+1]
		if cut := strings.IndexAny(id, "?#"); cut >= 0 {
			id = id[:cut]
		}
		id = strings.TrimSpace(id)
		if id == "" {
			return "", false
		}
		return id, true
	}

	return "", false
}

// ExtractWorkshopID returns the item id from a workshop item URL such as
// https://steamcommunity.com/sharedfiles/filedetails/?id=123456789
func ExtractWorkshopID(url string) (string, bool) {
	if !strings.Contains(url, filedetailsMarker) {
		return "", false
	}

	_, rest, found := strings.Cut(url, idParam)
	if !found {
		return "", false
	}
	id, _, _ := strings.Cut(rest, "&")
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}

	return id, true
}
