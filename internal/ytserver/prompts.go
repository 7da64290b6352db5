package ytserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const generalInstructions = `You are a research assistant with access to YouTube tools.

- generate_queries: turn a topic into up to 5 focused YouTube search queries.
- search_youtube: search YouTube for a query and get titles, channels, publish dates and view/like/comment counts.
- get_transcripts: fetch transcripts for a list of video IDs. Videos without a transcript return a short error description instead.
- research_youtube: do all of the above in one call.

Prefer videos with high view counts from established channels. Quote transcripts when summarising, and say so when a transcript is unavailable.`

// RegisterPrompts registers general_instructions and research_topic.
func RegisterPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "general_instructions",
		Description: "General instructions for working with the YouTube research tools",
	}, func(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return userPrompt("", generalInstructions), nil
	})

	server.AddPrompt(&mcp.Prompt{
		Name:        "research_topic",
		Description: "Research a topic using YouTube videos and their transcripts",
		Arguments: []*mcp.PromptArgument{
			{Name: "topic", Description: "Topic to research", Required: true},
		},
	}, func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var topic string
		if req != nil && req.Params != nil {
			topic = strings.TrimSpace(req.Params.Arguments["topic"])
		}
		if topic == "" {
			return nil, fmt.Errorf("topic is required")
		}
		return userPrompt("Research "+topic, ResearchTopicText(topic)), nil
	})
}

// ResearchTopicText is the user message of the research_topic prompt.
func ResearchTopicText(topic string) string {
	return fmt.Sprintf(`Research "%s" using YouTube.

1. Call generate_queries with the topic to get search queries.
2. Call search_youtube for each query (max_results 3).
3. Call get_transcripts with the IDs of the most relevant videos.
4. Summarise the key points, citing video titles and URLs.

Alternatively call research_youtube once with the topic.`, topic)
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}
}
