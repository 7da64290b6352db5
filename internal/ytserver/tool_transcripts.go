package ytserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"github.com/anatolykoptev/go_ytresearch/internal/engine/sources"
	"github.com/anatolykoptev/go_ytresearch/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetTranscripts fetches transcripts for all requested videos concurrently.
// Each video maps to its transcript text or to a placeholder describing why
// none was recovered.
func GetTranscripts(ctx context.Context, deps Deps, input engine.GetTranscriptsInput) (engine.GetTranscriptsOutput, error) {
	ids := input.VideoIDs
	if input.VideoIDsCSV != "" {
		parsed, err := sources.ParseVideoIDs(input.VideoIDsCSV)
		if err != nil {
			return engine.GetTranscriptsOutput{}, err
		}
		ids = append(ids, parsed...)
	}
	ids = sources.NormalizeVideoIDs(ids)
	if len(ids) == 0 {
		return engine.GetTranscriptsOutput{}, fmt.Errorf("video_ids is required")
	}
	results := deps.Fetcher.FetchAll(ctx, ids)
	return engine.GetTranscriptsOutput{Transcripts: engine.RenderTranscripts(results)}, nil
}

func registerGetTranscripts(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcripts",
		Description: "Fetch transcripts for YouTube videos by ID (or watch URL). Returns a map video_id → transcript text; videos without a transcript map to a short error description instead.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(true)},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.GetTranscriptsInput) (*mcp.CallToolResult, engine.GetTranscriptsOutput, error) {
		engine.IncrToolCalls()
		out, err := GetTranscripts(ctx, deps, input)
		if err != nil {
			return nil, engine.GetTranscriptsOutput{}, err
		}
		return textResult(toolutil.FormatTranscripts(out.Transcripts)), out, nil
	})
}

func boolPtr(b bool) *bool { return &b }
