package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/400brands/brand-doctor/internal/domain/ai"
	"github.com/400brands/brand-doctor/internal/domain/search"
)

const (
	maxTokens     = 4096
	searchResults = 5
	defaultModel  = anthropic.ModelClaudeSonnet4_20250514
)

// Messager is the subset of the SDK used here.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client calls the Messages API. It cannot execute tools mid-conversation, so
// search results for the prompt's SearchHint are fetched up front and appended
// to the user message.
type Client struct {
	messages Messager
	Model    string
	Searcher ai.Searcher
}

// NewClient builds a Messages client. timeout bounds each attempt; zero keeps
// the SDK default.
func NewClient(apiKey, model, baseURL string, timeout time.Duration, searcher ai.Searcher) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	c := anthropic.NewClient(opts...)
	return &Client{messages: &c.Messages, Model: model, Searcher: searcher}
}

func (c *Client) Generate(ctx context.Context, p ai.Prompt) (string, error) {
	model := anthropic.Model(c.Model)
	if c.Model == "" {
		model = defaultModel
	}

	user := p.User
	if grounding := c.grounding(ctx, p.SearchHint); grounding != "" {
		user += "\n\n" + grounding
	}

	resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:       model,
		MaxTokens:   maxTokens,
		System:      []anthropic.TextBlockParam{{Text: p.System}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(user))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "", ai.ErrQuotaExceeded
		}
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

func (c *Client) grounding(ctx context.Context, hint string) string {
	if c.Searcher == nil || strings.TrimSpace(hint) == "" {
		return ""
	}
	results, err := c.Searcher.Search(ctx, hint, searchResults)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("query", hint).Msg("grounding search failed")
		return ""
	}
	return FormatResults(results)
}

// FormatResults renders search results as a numbered list for the prompt.
func FormatResults(results []search.Result) string {
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Web search results (use them to verify the brand and its competitors):\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, r.Title, r.Link)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "   %s\n", r.Snippet)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
