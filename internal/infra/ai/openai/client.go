package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/400brands/brand-doctor/internal/domain/ai"
)

const (
	maxTokens     = 4096
	maxToolRounds = 3
	searchResults = 5
	defaultModel  = "gpt-4o"
	searchTool    = "web_search"
)

var searchToolDef = openai.Tool{
	Type: openai.ToolTypeFunction,
	Function: &openai.FunctionDefinition{
		Name:        searchTool,
		Description: "Search the web for a business, its website, listings, reviews and local competitors.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{"type": "string", "description": "Search query"},
			},
			"required": []string{"query"},
		},
	},
}

type Client struct {
	*openai.Client
	Model    string
	Searcher ai.Searcher
}

// NewClient builds a chat-completion client. baseURL may be empty for the public API.
// searcher may be nil, in which case no tool is declared.
func NewClient(apiKey, model, baseURL string, timeout time.Duration, searcher ai.Searcher) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model, Searcher: searcher}
}

// Generate runs the prompt in JSON-object mode. When the model asks for the
// web_search tool the search is executed and the results are fed back, for at
// most maxToolRounds rounds.
func (c *Client) Generate(ctx context.Context, p ai.Prompt) (string, error) {
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
	}
	if c.Searcher != nil {
		req.Tools = []openai.Tool{searchToolDef}
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if isReasoningModel(model) {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	for round := 0; ; round++ {
		resp, err := c.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", classify(err)
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("openai: empty choices")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}
		if round >= maxToolRounds {
			return "", ai.ErrToolLoopExceeded
		}

		req.Messages = append(req.Messages, msg)
		for _, call := range msg.ToolCalls {
			req.Messages = append(req.Messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    c.runTool(ctx, call),
				ToolCallID: call.ID,
			})
		}
	}
}

// runTool always returns content for the model, including failures, so the
// conversation stays well-formed.
func (c *Client) runTool(ctx context.Context, call openai.ToolCall) string {
	log := zerolog.Ctx(ctx)
	if call.Function.Name != searchTool || c.Searcher == nil {
		return fmt.Sprintf(`{"error":"unknown tool %q"}`, call.Function.Name)
	}

	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil || strings.TrimSpace(args.Query) == "" {
		return `{"error":"query is required"}`
	}

	results, err := c.Searcher.Search(ctx, args.Query, searchResults)
	if err != nil {
		log.Warn().Err(err).Str("query", args.Query).Msg("web_search tool failed")
		return `{"error":"search unavailable"}`
	}
	log.Debug().Str("query", args.Query).Int("results", len(results)).Msg("web_search tool")

	b, err := json.Marshal(map[string]any{"results": results})
	if err != nil {
		return `{"error":"encode results"}`
	}
	return string(b)
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ai.ErrQuotaExceeded, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return ai.ErrQuotaExceeded
	}
	return fmt.Errorf("failed to create chat completion: %w", err)
}
