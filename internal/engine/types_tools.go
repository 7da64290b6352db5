package engine

// --- Tool inputs ---

type GenerateQueriesInput struct {
	Query string `json:"query" jsonschema:"Free-text topic to turn into YouTube search queries"`
}

type SearchYouTubeInput struct {
	Query      string `json:"query" jsonschema:"YouTube search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Max videos to return (default 3, max 50)"`
}

type GetTranscriptsInput struct {
	VideoIDs    []string `json:"video_ids,omitempty" jsonschema:"YouTube video IDs or watch URLs"`
	VideoIDsCSV string   `json:"video_ids_csv,omitempty" jsonschema:"Comma-separated video IDs (alternative to video_ids)"`
}

type ResearchYouTubeInput struct {
	Query      string `json:"query" jsonschema:"Research topic"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Videos per generated query (default 3)"`
}

// --- Tool outputs ---

type GenerateQueriesOutput struct {
	Query   string   `json:"query"`
	Queries []string `json:"queries"`
}

// SearchYouTubeOutput carries Videos == nil when the search failed and an
// empty list when the search succeeded with no results.
type SearchYouTubeOutput struct {
	Query  string        `json:"query"`
	Videos []VideoRecord `json:"videos"`
	Error  string        `json:"error,omitempty"`
}

type GetTranscriptsOutput struct {
	Transcripts map[string]string `json:"transcripts"`
}

type ResearchYouTubeOutput struct {
	Query       string            `json:"query"`
	Queries     []string          `json:"queries"`
	Videos      []VideoRecord     `json:"videos"`
	Transcripts map[string]string `json:"transcripts"`
	Failed      []string          `json:"failed_queries,omitempty"`
}
