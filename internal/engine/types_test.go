package engine

import (
	"maps"
	"testing"
)

func TestTranscriptRender(t *testing.T) {
	tests := []struct {
		name string
		in   Transcript
		want string
	}{
		{"ok", Transcript{Text: "a b"}, "a b"},
		{"unexpected format", Transcript{Failure: FailureUnexpectedFormat}, "Unexpected transcript format."},
		{"missing key", Transcript{Failure: FailureMissingKey}, "Transcript key not found in API response."},
		{"decode", Transcript{Failure: FailureDecode, Reason: "unexpected EOF"}, "Error decoding JSON: unexpected EOF"},
		{"status", Transcript{Failure: FailureStatus, Status: 500}, "Error fetching transcript: 500"},
		{"request", Transcript{Failure: FailureRequest, Reason: "dial tcp: refused"}, "Request failed: dial tcp: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if got, want := tt.in.OK(), tt.in.Failure == FailureNone; got != want {
				t.Errorf("OK() = %v, want %v", got, want)
			}
		})
	}
}

func TestRenderTranscripts(t *testing.T) {
	got := RenderTranscripts(map[string]Transcript{
		"x": {VideoID: "x", Text: "hello"},
		"y": {VideoID: "y", Failure: FailureStatus, Status: 404},
	})
	want := map[string]string{
		"x": "hello",
		"y": "Error fetching transcript: 404",
	}
	if !maps.Equal(got, want) {
		t.Errorf("RenderTranscripts() = %v, want %v", got, want)
	}
}
