package ytserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"github.com/anatolykoptev/go_ytresearch/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GenerateQueries expands one topic into up to five YouTube search queries.
// An empty list is a valid result: the model produced nothing usable.
func GenerateQueries(ctx context.Context, deps Deps, input engine.GenerateQueriesInput) (engine.GenerateQueriesOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return engine.GenerateQueriesOutput{}, fmt.Errorf("query is required")
	}
	queries, err := deps.Expander.Expand(ctx, query)
	if err != nil {
		return engine.GenerateQueriesOutput{}, err
	}
	return engine.GenerateQueriesOutput{Query: query, Queries: queries}, nil
}

func registerGenerateQueries(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_queries",
		Description: "Generate up to 5 diverse YouTube search queries for a topic using an LLM. Returns an empty list when no queries could be generated.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.GenerateQueriesInput) (*mcp.CallToolResult, engine.GenerateQueriesOutput, error) {
		engine.IncrToolCalls()
		out, err := GenerateQueries(ctx, deps, input)
		if err != nil {
			return nil, engine.GenerateQueriesOutput{}, err
		}
		return textResult(toolutil.FormatQueries(out.Queries)), out, nil
	})
}
