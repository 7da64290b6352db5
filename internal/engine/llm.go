package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// Completer sends one chat-completion request and returns the response text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// errEmptyCompletion is returned when the model produced no choices.
var errEmptyCompletion = errors.New("llm: empty completion")

// NewCompleter builds the Completer selected by cfg.LLMProvider.
func NewCompleter(cfg Config) (Completer, error) {
	if err := cfg.RequireLLM(); err != nil {
		return nil, err
	}
	switch cfg.LLMProvider {
	case "", ProviderOpenAI:
		return NewOpenAICompleter(cfg), nil
	case ProviderCompat:
		return NewKitCompleter(cfg), nil
	}
	return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
}

// OpenAICompleter calls the chat completions API in JSON response mode.
type OpenAICompleter struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAICompleter creates a completer backed by openai-go. SDK-level retries
// are disabled; callers apply their own retry policy.
func NewOpenAICompleter(cfg Config, extra ...option.RequestOption) *OpenAICompleter {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.LLMAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.LLMAPIBase != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLMAPIBase))
	}
	opts = append(opts, extra...)
	return &OpenAICompleter{
		client:      openai.NewClient(opts...),
		model:       cfg.LLMModel,
		temperature: cfg.LLMTemperature,
		maxTokens:   cfg.LLMMaxTokens,
	}
}

// Complete implements Completer.
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	IncrLLMCalls()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		IncrLLMErrors()
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		IncrLLMErrors()
		return "", errEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// KitCompleter calls any OpenAI-compatible endpoint through go-kit's llm client.
type KitCompleter struct {
	client      *llm.Client
	temperature float64
	maxTokens   int
}

// NewKitCompleter creates a completer backed by go-kit/llm.
func NewKitCompleter(cfg Config) *KitCompleter {
	base := cfg.LLMAPIBase
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	return &KitCompleter{
		client: llm.NewClient(base, cfg.LLMAPIKey, cfg.LLMModel,
			llm.WithMaxTokens(cfg.LLMMaxTokens),
			llm.WithTemperature(cfg.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		),
		temperature: cfg.LLMTemperature,
		maxTokens:   cfg.LLMMaxTokens,
	}
}

// Complete implements Completer.
func (c *KitCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	IncrLLMCalls()
	raw, err := c.client.Complete(ctx, system, user,
		llm.WithChatTemperature(c.temperature),
		llm.WithChatMaxTokens(c.maxTokens),
	)
	if err != nil {
		IncrLLMErrors()
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return StripFences(raw), nil
}

// StripFences removes markdown code fences from LLM output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
