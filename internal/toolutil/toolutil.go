// Package toolutil renders tool results as human-readable text, shared by the
// MCP tool handlers and the command-line subcommands.
package toolutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
	"github.com/anatolykoptev/go_ytresearch/internal/engine"
)

// descriptionPreview is the number of description runes shown per video.
const descriptionPreview = 150

// FormatQueries renders generated queries as a numbered list.
func FormatQueries(queries []string) string {
	var sb strings.Builder
	sb.WriteString("Generated YouTube search queries:\n")
	if len(queries) == 0 {
		sb.WriteString("(none)\n")
	}
	for i, q := range queries {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q)
	}
	return sb.String()
}

// FormatVideos renders search results one block per video. A nil slice means
// the search failed; an empty one means nothing matched.
func FormatVideos(query string, videos []engine.VideoRecord) string {
	if videos == nil {
		return fmt.Sprintf("Search for '%s' failed.\n", query)
	}
	if len(videos) == 0 {
		return fmt.Sprintf("No videos found for '%s'.\n", query)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Found %d videos for '%s' ---\n\n", len(videos), query)
	for i, v := range videos {
		fmt.Fprintf(&sb, "--- Result %d ---\n", i+1)
		fmt.Fprintf(&sb, "Title: %s\n", v.Title)
		fmt.Fprintf(&sb, "URL: %s\n", v.VideoURL)
		fmt.Fprintf(&sb, "Channel: %s\n", v.ChannelTitle)
		fmt.Fprintf(&sb, "Views: %d\n", v.ViewCount)
		fmt.Fprintf(&sb, "Likes: %d\n", v.LikeCount)
		fmt.Fprintf(&sb, "Comments: %d\n", v.CommentCount)
		fmt.Fprintf(&sb, "Published Date: %s\n", v.PublishedAt)
		fmt.Fprintf(&sb, "Description: %s\n", strutil.TruncateWith(v.Description, descriptionPreview, "..."))
		sb.WriteString(strings.Repeat("-", 20) + "\n\n")
	}
	return sb.String()
}

// FormatTranscripts renders the id → transcript mapping sorted by video ID.
func FormatTranscripts(transcripts map[string]string) string {
	ids := make([]string, 0, len(transcripts))
	for id := range transcripts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "=== %s ===\n%s\n\n", id, transcripts[id])
	}
	return sb.String()
}

// FormatResearch renders a full research run: queries, videos, transcripts.
func FormatResearch(out engine.ResearchYouTubeOutput) string {
	var sb strings.Builder
	sb.WriteString(FormatQueries(out.Queries))
	sb.WriteString("\n")
	sb.WriteString(FormatVideos(out.Query, out.Videos))
	if len(out.Failed) > 0 {
		fmt.Fprintf(&sb, "Searches failed for: %s\n\n", strings.Join(out.Failed, "; "))
	}
	sb.WriteString(FormatTranscripts(out.Transcripts))
	return sb.String()
}
