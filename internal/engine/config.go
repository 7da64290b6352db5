package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned when a required API key is not configured.
// It is a configuration error and is never retried.
var ErrMissingCredential = errors.New("missing credential")

// Transport modes for the MCP server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// LLM providers.
const (
	ProviderOpenAI = "openai" // openai-go with JSON response mode
	ProviderCompat = "compat" // go-kit OpenAI-compatible client
)

// DefaultTranscriptAPIBase is the transcript scraping service used when
// TRANSCRIPT_API_BASE is unset.
const DefaultTranscriptAPIBase = "https://ytb2mp4.com"

// Config holds all configuration, loaded once in main and injected into components.
type Config struct {
	LLMProvider    string
	LLMAPIKey      string
	LLMAPIBase     string
	LLMModel       string
	LLMTemperature float64
	LLMMaxTokens   int

	YouTubeAPIKey   string
	YouTubeEndpoint string // empty = Google default

	TranscriptAPIBase     string
	TranscriptInsecureTLS bool
	TranscriptTimeout     time.Duration // 0 = client default

	Transport string
	MCPPort   string
	LogLevel  string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}
	return Config{
		LLMProvider:           env.Str("LLM_PROVIDER", ProviderOpenAI),
		LLMAPIKey:             env.Str("OPENAI_API_KEY", ""),
		LLMAPIBase:            env.Str("LLM_API_BASE", ""),
		LLMModel:              env.Str("LLM_MODEL", "gpt-4o-mini"),
		LLMTemperature:        env.Float("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:          env.Int("LLM_MAX_TOKENS", 150),
		YouTubeAPIKey:         env.Str("YOUTUBE_API_KEY", ""),
		YouTubeEndpoint:       env.Str("YOUTUBE_API_ENDPOINT", ""),
		TranscriptAPIBase:     env.Str("TRANSCRIPT_API_BASE", DefaultTranscriptAPIBase),
		TranscriptInsecureTLS: envBool("TRANSCRIPT_INSECURE_TLS", true),
		TranscriptTimeout:     env.Duration("TRANSCRIPT_TIMEOUT", 0),
		Transport:             env.Str("MCP_TRANSPORT", TransportStdio),
		MCPPort:               env.Str("MCP_PORT", "8892"),
		LogLevel:              env.Str("LOG_LEVEL", "info"),
	}
}

// envBool reads a boolean variable. Besides strconv.ParseBool forms it accepts
// yes/no and on/off; anything else logs a warning and yields def.
func envBool(key string, def bool) bool {
	raw := strings.ToLower(strings.TrimSpace(env.Str(key, "")))
	switch raw {
	case "":
		return def
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean, using default",
			slog.String("key", key), slog.String("value", raw), slog.Bool("default", def))
		return def
	}
	return v
}

// RequireLLM reports whether the language-model credential is present.
func (c Config) RequireLLM() error {
	if c.LLMAPIKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY not found in environment variables", ErrMissingCredential)
	}
	return nil
}

// RequireYouTube reports whether the YouTube Data API key is present.
func (c Config) RequireYouTube() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: please set the YOUTUBE_API_KEY environment variable", ErrMissingCredential)
	}
	return nil
}

// Validate checks every credential the server needs before it starts.
func (c Config) Validate() error {
	return errors.Join(c.RequireLLM(), c.RequireYouTube())
}
