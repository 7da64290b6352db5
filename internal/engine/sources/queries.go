package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"golang.org/x/sync/semaphore"
)

const (
	queryMaxAttempts  = 3
	queryRetryPause   = time.Second
	queryMaxInFlight  = 5
	querySystemPrompt = "You are a helpful assistant that generates YouTube search queries. Return the queries in a JSON array format."
	queryUserPrompt   = `Given the following query, generate 5 different YouTube search queries that would help find relevant videos.
Make the queries diverse and specific, including different aspects of the topic.
Original query: %s

Return the queries in a JSON array format like this:
{"queries": ["query1", "query2", "query3", "query4", "query5"]}`
)

var errNoQueries = errors.New("no queries in model response")

// QueryExpander turns one free-text query into up to five YouTube search queries.
type QueryExpander struct {
	llm   engine.Completer
	retry engine.RetryConfig
	slots *semaphore.Weighted
}

// NewQueryExpander returns an expander with three attempts, a one second pause
// between attempts and at most five attempts in flight across all callers.
func NewQueryExpander(llm engine.Completer) *QueryExpander {
	return &QueryExpander{
		llm:   llm,
		retry: expanderRetry(engine.FixedRetryConfig(queryMaxAttempts, queryRetryPause)),
		slots: semaphore.NewWeighted(queryMaxInFlight),
	}
}

// expanderRetry moves on without pausing when the model answered with JSON but
// no queries; every other failure waits before the next attempt.
func expanderRetry(rc engine.RetryConfig) engine.RetryConfig {
	rc.Immediate = func(err error) bool { return errors.Is(err, errNoQueries) }
	return rc
}

// WithRetry overrides the attempt count and pauses; empty JSON answers still
// retry without pausing.
func (e *QueryExpander) WithRetry(rc engine.RetryConfig) *QueryExpander {
	e.retry = expanderRetry(rc)
	return e
}

// Expand generates up to five search queries for query. A nil Completer is a
// configuration error. Every other failure is retried and finally degrades
// to an empty list with a nil error.
func (e *QueryExpander) Expand(ctx context.Context, query string) ([]string, error) {
	if e.llm == nil {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not found in environment variables", engine.ErrMissingCredential)
	}
	user := fmt.Sprintf(queryUserPrompt, query)

	attempt := 0
	queries, err := engine.RetryDo(ctx, e.retry, func() ([]string, error) {
		attempt++
		slog.Info("generating queries",
			slog.Int("attempt", attempt), slog.Int("max_attempts", e.retry.Attempts()))
		qs, err := e.attempt(ctx, user)
		if err != nil {
			slog.Warn("query generation attempt failed",
				slog.Int("attempt", attempt), slog.Any("error", err))
		}
		return qs, err
	})
	if err != nil {
		slog.Warn("max retries reached, could not generate queries",
			slog.String("query", query), slog.Any("error", err))
		engine.IncrEmptyExpansion()
		return []string{}, nil
	}
	if queries == nil {
		queries = []string{}
	}
	return queries, nil
}

func (e *QueryExpander) attempt(ctx context.Context, user string) ([]string, error) {
	if err := e.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.slots.Release(1)

	raw, err := e.llm.Complete(ctx, querySystemPrompt, user)
	if err != nil {
		return nil, err
	}
	return ParseQueries(raw)
}

// ParseQueries extracts queries from a model response. Valid JSON must be an
// object with a non-empty "queries" array; non-string entries keep their JSON
// text. Anything that is not JSON falls back to one query per non-blank line.
// At most five queries are returned, in order.
func ParseQueries(raw string) ([]string, error) {
	text := engine.StripFences(raw)
	if !json.Valid([]byte(text)) {
		return firstN(splitLines(text), engine.MaxQueries), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("parse queries: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("parse queries: null response")
	}
	field, ok := obj["queries"]
	if !ok {
		return nil, errNoQueries
	}
	if string(field) == "null" {
		return nil, fmt.Errorf("parse queries: null queries")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(field, &items); err != nil {
		return nil, fmt.Errorf("parse queries: %w", err)
	}
	if len(items) == 0 {
		return nil, errNoQueries
	}

	items = firstN(items, engine.MaxQueries)
	queries := make([]string, 0, len(items))
	for _, item := range items {
		var q string
		if err := json.Unmarshal(item, &q); err != nil {
			q = string(item)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
