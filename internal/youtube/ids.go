package youtube

import (
	"net/url"
	"strings"
)

// ExtractVideoID returns the video id carried by a watch URL
// (youtube.com/watch?v=ID) or a short link (youtu.be/ID).
// Anything else, including malformed input, reports false.
func ExtractVideoID(reference string) (string, bool) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return "", false
	}

	u, err := url.Parse(reference)
	if err != nil {
		return "", false
	}

	var id string
	switch u.Hostname() {
	case "www.youtube.com", "youtube.com":
		id = u.Query().Get("v")
	case "youtu.be":
		id, _, _ = strings.Cut(strings.TrimLeft(u.Path, "/"), "/")
	default:
		return "", false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	return id, true
}
