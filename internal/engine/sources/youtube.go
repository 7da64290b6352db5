package sources

// YouTube research components, one file per responsibility:
//   youtube.go            — video ID parsing and canonical watch URLs
//   queries.go            — LLM query expansion with bounded retries
//   youtube_search.go     — Data API v3 search + batch detail lookup
//   youtube_transcript.go — concurrent transcript fan-out against the scraping service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const ytWatchBase = "https://www.youtube.com/watch?v="

var (
	videoIDRE     = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	bareVideoIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return ytWatchBase + videoID
}

// ExtractVideoID pulls the 11-char video ID from any YouTube URL format.
// Input that is not a recognizable URL is returned trimmed, unchanged.
func ExtractVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if bareVideoIDRE.MatchString(raw) {
		return raw
	}
	if m := videoIDRE.FindStringSubmatch(raw); len(m) >= 2 {
		return m[1]
	}
	return raw
}

// ParseVideoIDs accepts either a JSON array of strings or a comma-separated list.
// IDs are normalized with ExtractVideoID; empties and duplicates are dropped,
// first-seen order is kept.
func ParseVideoIDs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	var parts []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &parts); err != nil {
			return nil, fmt.Errorf("invalid JSON array of video IDs: %w", err)
		}
	} else {
		parts = strings.Split(raw, ",")
	}
	return NormalizeVideoIDs(parts), nil
}

// NormalizeVideoIDs applies ExtractVideoID to each entry and removes empties and duplicates.
func NormalizeVideoIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = ExtractVideoID(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
