package search

import "context"

type Client interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}
