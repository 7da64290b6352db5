package engine

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewTranscriptClient(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		insecure bool
	}{
		{"insecure default timeout", 0, true},
		{"verified with timeout", 20 * time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := NewTranscriptClient(tt.timeout, tt.insecure)
			if err != nil {
				t.Fatalf("NewTranscriptClient() error = %v", err)
			}
			if tc == nil || tc.client == nil {
				t.Fatal("NewTranscriptClient() returned nil client")
			}
			tc.CloseIdleConnections()
		})
	}
}

func TestTimeoutSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int
	}{
		{time.Second, 1},
		{500 * time.Millisecond, 1},
		{1500 * time.Millisecond, 2},
		{30 * time.Second, 30},
	}
	for _, tt := range tests {
		if got := timeoutSeconds(tt.in); got != tt.want {
			t.Errorf("timeoutSeconds(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// echoTLSServer serves a fixed JSON body over TLS with a self-signed
// certificate and echoes the X-Request-Id header and url query back.
func echoTLSServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Echo", r.Header.Get("X-Request-Id"))
		w.Header().Set("X-Echo-Query", r.URL.Query().Get("url"))
		io.WriteString(w, `{"transcript":"hello"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTranscriptClientDoInsecure(t *testing.T) {
	srv := echoTLSServer(t)
	tc, err := NewTranscriptClient(10*time.Second, true)
	if err != nil {
		t.Fatalf("NewTranscriptClient() error = %v", err)
	}
	defer tc.CloseIdleConnections()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/fetch-transcript?url=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3Dabc", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("X-Request-Id", "req-42")

	resp, err := tc.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Echo"); got != "req-42" {
		t.Errorf("request header lost in transit: X-Echo = %q", got)
	}
	if got := resp.Header.Get("X-Echo-Query"); got != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("query lost in transit: %q", got)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if resp.Request != req {
		t.Error("response does not reference the originating request")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != `{"transcript":"hello"}` {
		t.Errorf("body = %q", body)
	}
}

func TestTranscriptClientDoVerifiesCertificates(t *testing.T) {
	srv := echoTLSServer(t)
	tc, err := NewTranscriptClient(10*time.Second, false)
	if err != nil {
		t.Fatalf("NewTranscriptClient() error = %v", err)
	}
	defer tc.CloseIdleConnections()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := tc.Do(req)
	if err == nil {
		resp.Body.Close()
		t.Fatal("Do() against a self-signed certificate succeeded with verification enabled")
	}
	if !strings.Contains(err.Error(), "certificate") {
		t.Errorf("Do() error = %v, want a certificate error", err)
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if len(ua) < 20 {
		t.Errorf("user-agent too short: %q", ua)
	}
}
