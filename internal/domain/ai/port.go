package ai

import (
	"context"

	"github.com/400brands/brand-doctor/internal/domain/search"
)

// Prompt is one generation request. SearchHint is the query a provider may
// use to ground the answer with web results.
type Prompt struct {
	System     string
	User       string
	SearchHint string
}

type Client interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Searcher executes the web_search tool on behalf of the model.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]search.Result, error)
}
