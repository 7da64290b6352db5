package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ToolCalls                 atomic.Int64
	LLMCalls                  atomic.Int64
	LLMErrors                 atomic.Int64
	QueryExpansionsEmpty      atomic.Int64
	YouTubeSearchRequests     atomic.Int64
	YouTubeSearchErrors       atomic.Int64
	YouTubeTranscriptRequests atomic.Int64
	YouTubeTranscriptFailures atomic.Int64
}

var metricKeys = []string{
	"tool_calls",
	"llm_calls", "llm_errors", "query_expansions_empty",
	"youtube_search_requests", "youtube_search_errors",
	"youtube_transcript_requests", "youtube_transcript_failures",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"tool_calls":                  metrics.ToolCalls.Load(),
		"llm_calls":                   metrics.LLMCalls.Load(),
		"llm_errors":                  metrics.LLMErrors.Load(),
		"query_expansions_empty":      metrics.QueryExpansionsEmpty.Load(),
		"youtube_search_requests":     metrics.YouTubeSearchRequests.Load(),
		"youtube_search_errors":       metrics.YouTubeSearchErrors.Load(),
		"youtube_transcript_requests": metrics.YouTubeTranscriptRequests.Load(),
		"youtube_transcript_failures": metrics.YouTubeTranscriptFailures.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func IncrToolCalls()         { metrics.ToolCalls.Add(1) }
func IncrLLMCalls()          { metrics.LLMCalls.Add(1) }
func IncrLLMErrors()         { metrics.LLMErrors.Add(1) }
func IncrEmptyExpansion()    { metrics.QueryExpansionsEmpty.Add(1) }
func IncrYouTubeSearch()     { metrics.YouTubeSearchRequests.Add(1) }
func IncrYouTubeSearchErr()  { metrics.YouTubeSearchErrors.Add(1) }
func IncrYouTubeTranscript() { metrics.YouTubeTranscriptRequests.Add(1) }
func IncrTranscriptFailure() { metrics.YouTubeTranscriptFailures.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
