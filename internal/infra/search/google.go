package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domain "github.com/400brands/brand-doctor/internal/domain/search"
)

// Custom Search returns at most 10 items per request.
const maxNum = 10

var ErrSearchTimeout = errors.New("web search timed out")

// Google calls the Custom Search JSON API.
type Google struct {
	baseURL  string
	apiKey   string
	engineID string
	client   *http.Client
}

func NewGoogle(baseURL, apiKey, engineID string, timeout time.Duration) *Google {
	return &Google{
		baseURL:  baseURL,
		apiKey:   apiKey,
		engineID: engineID,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *Google) Search(ctx context.Context, query string, limit int) ([]domain.Result, error) {
	searchURL, err := g.buildURL(query, limit)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, ErrSearchTimeout
		}
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var body struct {
		Items []struct {
			Title       string `json:"title"`
			Link        string `json:"link"`
			Snippet     string `json:"snippet"`
			DisplayLink string `json:"displayLink"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]domain.Result, 0, len(body.Items))
	for _, it := range body.Items {
		if it.Link == "" {
			continue
		}
		results = append(results, domain.Result{
			Title:       it.Title,
			Link:        it.Link,
			Snippet:     it.Snippet,
			DisplayLink: it.DisplayLink,
		})
	}
	return results, nil
}

func (g *Google) buildURL(query string, limit int) (string, error) {
	base, err := url.Parse(g.baseURL)
	if err != nil {
		return "", fmt.Errorf("search base url: %w", err)
	}
	if limit <= 0 || limit > maxNum {
		limit = maxNum
	}
	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("cx", g.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(limit))
	base.RawQuery = params.Encode()
	return base.String(), nil
}
