package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
)

// Transcripts come from a third-party scraping service:
//   GET {base}/api/fetch-transcript?url=https://www.youtube.com/watch?v={id}
// The body is JSON with an optional "transcript" key holding either a list of
// {"text": ...} segments or a plain string.

const (
	transcriptPath    = "/api/fetch-transcript"
	transcriptMaxBody = 8 * 1024 * 1024
)

// ClientFactory opens an HTTP client for one FetchAll call and returns a
// release func that is always invoked when the call completes.
type ClientFactory func() (engine.HTTPDoer, func(), error)

// TranscriptFetcher fetches best-effort transcripts for many videos at once.
type TranscriptFetcher struct {
	base      string
	newClient ClientFactory
}

// NewTranscriptFetcher returns a fetcher that opens a fresh tls-client per
// FetchAll call. TLS verification follows cfg.TranscriptInsecureTLS.
func NewTranscriptFetcher(cfg engine.Config) *TranscriptFetcher {
	return &TranscriptFetcher{
		base: transcriptBase(cfg.TranscriptAPIBase),
		newClient: func() (engine.HTTPDoer, func(), error) {
			tc, err := engine.NewTranscriptClient(cfg.TranscriptTimeout, cfg.TranscriptInsecureTLS)
			if err != nil {
				return nil, nil, err
			}
			return tc, tc.CloseIdleConnections, nil
		},
	}
}

// NewTranscriptFetcherWithClient returns a fetcher that reuses client for every call.
func NewTranscriptFetcherWithClient(base string, client engine.HTTPDoer) *TranscriptFetcher {
	return &TranscriptFetcher{
		base: transcriptBase(base),
		newClient: func() (engine.HTTPDoer, func(), error) {
			return client, func() {}, nil
		},
	}
}

func transcriptBase(base string) string {
	if base == "" {
		base = engine.DefaultTranscriptAPIBase
	}
	return strings.TrimRight(base, "/")
}

// FetchAll requests every video concurrently and waits for all of them.
// The result holds exactly one entry per distinct input ID; failures are
// recorded in the entry, never returned as an error.
func (f *TranscriptFetcher) FetchAll(ctx context.Context, videoIDs []string) map[string]engine.Transcript {
	ids := NormalizeVideoIDs(videoIDs)
	results := make(map[string]engine.Transcript, len(ids))
	if len(ids) == 0 {
		return results
	}

	client, release, err := f.newClient()
	if err != nil {
		slog.Error("transcript client init failed", slog.Any("error", err))
		for _, id := range ids {
			results[id] = engine.Transcript{VideoID: id, Failure: engine.FailureRequest, Reason: err.Error()}
		}
		return results
	}
	defer release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			t := f.fetchOne(ctx, client, id)
			mu.Lock()
			results[id] = t
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	failed := 0
	for _, t := range results {
		if !t.OK() {
			failed++
		}
	}
	slog.Info("transcripts fetched", slog.Int("videos", len(ids)), slog.Int("failed", failed))
	return results
}

// FetchAllText is FetchAll rendered to the id → text mapping, with failure
// placeholders in place of missing transcripts.
func (f *TranscriptFetcher) FetchAllText(ctx context.Context, videoIDs []string) map[string]string {
	return engine.RenderTranscripts(f.FetchAll(ctx, videoIDs))
}

// TranscriptURL builds the scraping service URL for a video.
func (f *TranscriptFetcher) TranscriptURL(videoID string) string {
	return f.base + transcriptPath + "?" + url.Values{"url": {WatchURL(videoID)}}.Encode()
}

func (f *TranscriptFetcher) fetchOne(ctx context.Context, client engine.HTTPDoer, videoID string) engine.Transcript {
	engine.IncrYouTubeTranscript()
	t := f.doFetch(ctx, client, videoID)
	t.VideoID = videoID
	if !t.OK() {
		engine.IncrTranscriptFailure()
		slog.Debug("transcript unavailable",
			slog.String("id", videoID), slog.String("reason", t.Render()))
	}
	return t
}

func (f *TranscriptFetcher) doFetch(ctx context.Context, client engine.HTTPDoer, videoID string) engine.Transcript {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.TranscriptURL(videoID), nil)
	if err != nil {
		return engine.Transcript{Failure: engine.FailureRequest, Reason: err.Error()}
	}
	req.Header.Set("User-Agent", engine.UserAgent())
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return engine.Transcript{Failure: engine.FailureRequest, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engine.Transcript{Failure: engine.FailureStatus, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, transcriptMaxBody))
	if err != nil {
		return engine.Transcript{Failure: engine.FailureRequest, Reason: err.Error()}
	}
	return ParseTranscriptBody(body)
}

// ParseTranscriptBody interprets a 200 response body from the scraping service.
func ParseTranscriptBody(body []byte) engine.Transcript {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return engine.Transcript{Failure: engine.FailureDecode, Reason: err.Error()}
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return engine.Transcript{Failure: engine.FailureMissingKey}
	}
	raw, ok := obj["transcript"]
	if !ok {
		return engine.Transcript{Failure: engine.FailureMissingKey}
	}

	switch v := raw.(type) {
	case string:
		return engine.Transcript{Text: v}
	case []any:
		parts := make([]string, 0, len(v))
		for i, seg := range v {
			m, ok := seg.(map[string]any)
			if !ok {
				return engine.Transcript{Failure: engine.FailureDecode, Reason: fmt.Sprintf("segment %d is not an object", i)}
			}
			text, ok := m["text"].(string)
			if !ok {
				return engine.Transcript{Failure: engine.FailureDecode, Reason: fmt.Sprintf("segment %d has no text", i)}
			}
			parts = append(parts, text)
		}
		return engine.Transcript{Text: strings.Join(parts, " ")}
	}
	return engine.Transcript{Failure: engine.FailureUnexpectedFormat}
}
