// Package extract pulls YouTube video links out of pasted chat text.
//
// Extraction is a full rebuild: every call matches against the complete input
// and returns a fresh, order-preserving deduplicated list. Matched links are
// not validated against the API; a link that yields no parseable video ID is
// simply excluded from insertion later.
package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// linkPattern matches youtube.com/watch?v= and youtu.be/ links, with or
// without scheme and www prefix.
var linkPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)[A-Za-z0-9_-]+`)

// Links returns the deduplicated YouTube links found in text, in first-seen
// order. Text without matches yields an empty slice.
func Links(text string) []string {
	matches := linkPattern.FindAllString(text, -1)

	links := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))

	for _, match := range matches {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		links = append(links, match)
	}

	return links
}

// VideoID derives the video ID from a YouTube link: the path segment of a
// youtu.be short link, or the v query parameter of a watch URL. The second
// return value is false when neither form yields an ID.
func VideoID(link string) (string, bool) {
	// Scheme-less matches still need to parse with a hostname.
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	switch host {
	case "youtu.be":
		id := strings.Trim(parsed.Path, "/")
		return id, id != ""
	case "youtube.com":
		id := parsed.Query().Get("v")
		return id, id != ""
	default:
		return "", false
	}
}

// VideoIDs converts links to video IDs, silently dropping links that yield
// none.
func VideoIDs(links []string) []string {
	ids := make([]string, 0, len(links))
	for _, link := range links {
		if id, ok := VideoID(link); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
