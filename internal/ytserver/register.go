// Package ytserver exposes the YouTube research components as MCP tools and prompts.
//
// Every tool is a free handler function taking explicit dependencies and a typed
// input, so it can be tested without a running server; the register* functions
// only adapt those handlers to the MCP SDK.
package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName identifies the MCP server implementation.
const ServerName = "youtube-mcp"

// Expander generates related search queries.
type Expander interface {
	Expand(ctx context.Context, query string) ([]string, error)
}

// Searcher looks up video metadata.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]engine.VideoRecord, error)
}

// Fetcher retrieves best-effort transcripts.
type Fetcher interface {
	FetchAll(ctx context.Context, videoIDs []string) map[string]engine.Transcript
}

// Deps are the components the tools dispatch to.
type Deps struct {
	Expander Expander
	Searcher Searcher
	Fetcher  Fetcher
}

// NewServer creates an MCP server with all tools and prompts registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)
	RegisterTools(server, deps)
	RegisterPrompts(server)
	return server
}

// RegisterTools registers generate_queries, search_youtube, get_transcripts
// and research_youtube on the given MCP server.
func RegisterTools(server *mcp.Server, deps Deps) {
	registerGenerateQueries(server, deps)
	registerSearchYouTube(server, deps)
	registerGetTranscripts(server, deps)
	registerResearchYouTube(server, deps)
}

// textResult wraps a rendered text body; the SDK adds the structured output.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}
