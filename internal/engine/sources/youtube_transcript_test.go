package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transcriptServer answers by video ID: a body string, or a status code when
// the mapped value starts with "status:".
func transcriptServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/fetch-transcript" {
			http.NotFound(w, r)
			return
		}
		id := ExtractVideoID(strings.TrimPrefix(r.URL.Query().Get("url"), "https://www.youtube.com/watch?v="))
		body, ok := bodies[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		var code int
		if _, err := fmt.Sscanf(body, "status:%d", &code); err == nil {
			w.WriteHeader(code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseTranscriptBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		failure engine.FailureKind
	}{
		{"segment list", `{"transcript":[{"text":"a"},{"text":"b"}]}`, "a b", engine.FailureNone},
		{"plain string", `{"transcript":"a b"}`, "a b", engine.FailureNone},
		{"empty list", `{"transcript":[]}`, "", engine.FailureNone},
		{"number", `{"transcript":42}`, "Unexpected transcript format.", engine.FailureUnexpectedFormat},
		{"null", `{"transcript":null}`, "Unexpected transcript format.", engine.FailureUnexpectedFormat},
		{"missing key", `{"error":"nope"}`, "Transcript key not found in API response.", engine.FailureMissingKey},
		{"top-level array", `[1,2]`, "Transcript key not found in API response.", engine.FailureMissingKey},
		{"segment without text", `{"transcript":[{"start":1}]}`, "Error decoding JSON: segment 0 has no text", engine.FailureDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTranscriptBody([]byte(tt.body))
			assert.Equal(t, tt.failure, got.Failure)
			assert.Equal(t, tt.want, got.Render())
		})
	}
}

func TestParseTranscriptBodyInvalidJSON(t *testing.T) {
	got := ParseTranscriptBody([]byte(`<html>oops</html>`))
	assert.Equal(t, engine.FailureDecode, got.Failure)
	assert.True(t, strings.HasPrefix(got.Render(), "Error decoding JSON: "), got.Render())
}

func TestFetchAllCompleteness(t *testing.T) {
	srv := transcriptServer(t, map[string]string{
		"x": `{"transcript":[{"text":"hello"},{"text":"world"}]}`,
		"y": "status:500",
	})
	f := NewTranscriptFetcherWithClient(srv.URL, srv.Client())

	got := f.FetchAllText(context.Background(), []string{"x", "y"})
	require.Len(t, got, 2)
	assert.Equal(t, "hello world", got["x"])
	assert.Contains(t, got["y"], "500")
	assert.Equal(t, "Error fetching transcript: 500", got["y"])
}

func TestFetchAllTaggedResults(t *testing.T) {
	srv := transcriptServer(t, map[string]string{
		"a": `{"transcript":"plain text"}`,
		"b": `{"nothing":true}`,
		"c": `not json`,
	})
	f := NewTranscriptFetcherWithClient(srv.URL+"/", srv.Client())

	got := f.FetchAll(context.Background(), []string{"a", "b", "c", "a"})
	require.Len(t, got, 3)
	assert.True(t, got["a"].OK())
	assert.Equal(t, "a", got["a"].VideoID)
	assert.Equal(t, engine.FailureMissingKey, got["b"].Failure)
	assert.Equal(t, engine.FailureDecode, got["c"].Failure)
}

func TestFetchAllTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	f := NewTranscriptFetcherWithClient(base, http.DefaultClient)
	got := f.FetchAllText(context.Background(), []string{"x"})
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got["x"], "Request failed: "), got["x"])
}

func TestFetchAllClientInitFailure(t *testing.T) {
	f := &TranscriptFetcher{
		base: "http://unused",
		newClient: func() (engine.HTTPDoer, func(), error) {
			return nil, nil, errors.New("no tls")
		},
	}
	got := f.FetchAllText(context.Background(), []string{"x", "y"})
	assert.Equal(t, map[string]string{"x": "Request failed: no tls", "y": "Request failed: no tls"}, got)
}

func TestFetchAllEmptyInput(t *testing.T) {
	f := NewTranscriptFetcherWithClient("http://unused", http.DefaultClient)
	got := f.FetchAll(context.Background(), nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchAllRunsConcurrently(t *testing.T) {
	const n = 6
	var inFlight, peak atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		<-release
		inFlight.Add(-1)
		fmt.Fprint(w, `{"transcript":"ok"}`)
	}))
	t.Cleanup(srv.Close)

	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%d", i)
	}
	f := NewTranscriptFetcherWithClient(srv.URL, srv.Client())

	done := make(chan map[string]string, 1)
	go func() { done <- f.FetchAllText(context.Background(), ids) }()

	require.Eventually(t, func() bool { return inFlight.Load() == n }, 2*time.Second, 5*time.Millisecond)
	close(release)
	got := <-done
	assert.Len(t, got, n)
	assert.Equal(t, int32(n), peak.Load())
}

func TestTranscriptURL(t *testing.T) {
	f := NewTranscriptFetcherWithClient("https://example.com/", http.DefaultClient)
	assert.Equal(t,
		"https://example.com/api/fetch-transcript?url=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3Dabc",
		f.TranscriptURL("abc"))
}

func TestNewTranscriptFetcherDefaultBase(t *testing.T) {
	f := NewTranscriptFetcher(engine.Config{})
	assert.True(t, strings.HasPrefix(f.TranscriptURL("abc"), engine.DefaultTranscriptAPIBase+"/api/fetch-transcript?"))
}

func TestNewTranscriptFetcherOverSelfSignedTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/fetch-transcript" || r.URL.Query().Get("url") != WatchURL("abc") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"transcript":[{"text":"hello"},{"text":"tls"}]}`)
	}))
	t.Cleanup(srv.Close)

	f := NewTranscriptFetcher(engine.Config{TranscriptAPIBase: srv.URL, TranscriptInsecureTLS: true})
	got := f.FetchAllText(context.Background(), []string{"abc"})
	assert.Equal(t, map[string]string{"abc": "hello tls"}, got)

	strict := NewTranscriptFetcher(engine.Config{TranscriptAPIBase: srv.URL, TranscriptInsecureTLS: false})
	got = strict.FetchAllText(context.Background(), []string{"abc"})
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got["abc"], "Request failed: "), got["abc"])
}
