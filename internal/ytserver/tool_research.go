package ytserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"github.com/anatolykoptev/go_ytresearch/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

// researchSearchLimit caps concurrent searches within one research run.
const researchSearchLimit = engine.MaxQueries

// ResearchYouTube runs the whole pipeline: expand the topic, search every
// expansion, merge videos by ID in query order, then fetch their transcripts.
// When expansion yields nothing the topic itself is searched. Failed searches
// are listed in Failed and skipped.
func ResearchYouTube(ctx context.Context, deps Deps, input engine.ResearchYouTubeInput) (engine.ResearchYouTubeOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return engine.ResearchYouTubeOutput{}, fmt.Errorf("query is required")
	}
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = engine.DefaultMaxResults
	}

	queries, err := deps.Expander.Expand(ctx, query)
	if err != nil {
		return engine.ResearchYouTubeOutput{}, err
	}
	searchQueries := queries
	if len(searchQueries) == 0 {
		slog.Info("research: no expansions, searching topic directly", slog.String("query", query))
		searchQueries = []string{query}
	}

	// Each search writes only its own index.
	perQuery := make([][]engine.VideoRecord, len(searchQueries))
	failed := make([]bool, len(searchQueries))

	var g errgroup.Group
	g.SetLimit(researchSearchLimit)
	for i, q := range searchQueries {
		g.Go(func() error {
			videos, err := deps.Searcher.Search(ctx, q, maxResults)
			if err != nil {
				slog.Warn("research: search failed", slog.String("query", q), slog.Any("error", err))
				failed[i] = true
				return nil
			}
			perQuery[i] = videos
			return nil
		})
	}
	g.Wait() //nolint:errcheck // failures are recorded per query

	out := engine.ResearchYouTubeOutput{
		Query:       query,
		Queries:     queries,
		Videos:      []engine.VideoRecord{},
		Transcripts: map[string]string{},
	}
	seen := make(map[string]bool)
	var ids []string
	for i, videos := range perQuery {
		if failed[i] {
			out.Failed = append(out.Failed, searchQueries[i])
			continue
		}
		for _, v := range videos {
			if v.VideoID == "" || seen[v.VideoID] {
				continue
			}
			seen[v.VideoID] = true
			out.Videos = append(out.Videos, v)
			ids = append(ids, v.VideoID)
		}
	}

	if len(ids) > 0 {
		out.Transcripts = engine.RenderTranscripts(deps.Fetcher.FetchAll(ctx, ids))
	}
	slog.Info("research complete",
		slog.String("query", query),
		slog.Int("queries", len(searchQueries)),
		slog.Int("failed", len(out.Failed)),
		slog.Int("videos", len(out.Videos)))
	return out, nil
}

func registerResearchYouTube(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "research_youtube",
		Description: "Research a topic on YouTube end to end: generate search queries with an LLM, search each of them, merge the videos and fetch every transcript. Returns queries, videos and a video_id → transcript map.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(true)},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ResearchYouTubeInput) (*mcp.CallToolResult, engine.ResearchYouTubeOutput, error) {
		engine.IncrToolCalls()
		var out engine.ResearchYouTubeOutput
		err := engine.TrackOperation(ctx, "research_youtube", func(ctx context.Context) error {
			var err error
			out, err = ResearchYouTube(ctx, deps, input)
			return err
		})
		if err != nil {
			return nil, engine.ResearchYouTubeOutput{}, err
		}
		return textResult(toolutil.FormatResearch(out)), out, nil
	})
}
