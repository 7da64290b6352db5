package engine

import "fmt"

// MaxQueries caps the number of generated search queries.
const MaxQueries = 5

// DefaultMaxResults is the number of videos returned by a search when unspecified.
const DefaultMaxResults = 3

// VideoRecord is the metadata of one YouTube video.
type VideoRecord struct {
	Title        string `json:"title"`
	VideoID      string `json:"video_id"`
	VideoURL     string `json:"video_url"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
	ViewCount    uint64 `json:"view_count"`
	LikeCount    uint64 `json:"like_count"`
	CommentCount uint64 `json:"comment_count"`
}

// FailureKind classifies why a transcript could not be recovered.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureUnexpectedFormat
	FailureMissingKey
	FailureDecode
	FailureStatus
	FailureRequest
)

// Transcript is the outcome of one transcript fetch: either Text, or a Failure.
type Transcript struct {
	VideoID string
	Text    string
	Failure FailureKind
	Status  int    // HTTP status for FailureStatus
	Reason  string // error message for FailureDecode and FailureRequest
}

// OK reports whether the transcript was recovered.
func (t Transcript) OK() bool { return t.Failure == FailureNone }

// Render returns the legacy string form: the transcript text, or a
// human-readable placeholder describing the failure.
func (t Transcript) Render() string {
	switch t.Failure {
	case FailureNone:
		return t.Text
	case FailureUnexpectedFormat:
		return "Unexpected transcript format."
	case FailureMissingKey:
		return "Transcript key not found in API response."
	case FailureDecode:
		return "Error decoding JSON: " + t.Reason
	case FailureStatus:
		return fmt.Sprintf("Error fetching transcript: %d", t.Status)
	case FailureRequest:
		return "Request failed: " + t.Reason
	}
	return t.Text
}

// RenderTranscripts converts fetch outcomes to the legacy id → string mapping.
func RenderTranscripts(results map[string]Transcript) map[string]string {
	out := make(map[string]string, len(results))
	for id, t := range results {
		out[id] = t.Render()
	}
	return out
}
