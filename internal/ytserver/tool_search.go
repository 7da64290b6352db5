package ytserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"github.com/anatolykoptev/go_ytresearch/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchYouTube returns metadata for up to max_results videos. A failed search
// is reported in the output (videos null, error set), not as a tool error, so
// callers can tell it apart from a search with no hits (videos empty).
func SearchYouTube(ctx context.Context, deps Deps, input engine.SearchYouTubeInput) (engine.SearchYouTubeOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return engine.SearchYouTubeOutput{}, fmt.Errorf("query is required")
	}
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = engine.DefaultMaxResults
	}

	videos, err := deps.Searcher.Search(ctx, query, maxResults)
	if err != nil {
		return engine.SearchYouTubeOutput{Query: query, Error: err.Error()}, nil
	}
	return engine.SearchYouTubeOutput{Query: query, Videos: videos}, nil
}

func registerSearchYouTube(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_youtube",
		Description: "Search YouTube videos and return metadata: title, video_id, URL, description, channel, publish date, view/like/comment counts. videos is null when the search failed and empty when nothing matched.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SearchYouTubeInput) (*mcp.CallToolResult, engine.SearchYouTubeOutput, error) {
		engine.IncrToolCalls()
		out, err := SearchYouTube(ctx, deps, input)
		if err != nil {
			return nil, engine.SearchYouTubeOutput{}, err
		}
		return textResult(toolutil.FormatVideos(out.Query, out.Videos)), out, nil
	})
}
