// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/research-agent/internal/httputil"
	"github.com/pdiddy/research-agent/pkg/types"
)

// tavilyAPIURL is the Tavily search endpoint. Package-level var for test substitution.
var tavilyAPIURL = "https://api.tavily.com/search"

// Tavily queries the Tavily search API.
type Tavily struct {
	APIKey    string
	UserAgent string
	Client    *http.Client
}

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type tavilyResponse struct {
	Results []tavilyHit `json:"results"`
}

type tavilyHit struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Name returns the provider identifier.
func (t *Tavily) Name() string { return "tavily" }

// Search requests summaries only (no raw page bodies). Missing fields
// decode to their zero values.
func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]types.Result, error) {
	if strings.TrimSpace(t.APIKey) == "" {
		return nil, errors.New("tavily: API key is missing")
	}

	body := tavilyRequest{
		APIKey:            t.APIKey,
		Query:             query,
		MaxResults:        maxResults,
		IncludeRawContent: false,
	}
	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, tavilyAPIURL, body)
	if err != nil {
		return nil, err
	}
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}

	var resp tavilyResponse
	if err := httputil.DoJSON(t.Client, req, &resp); err != nil {
		return nil, fmt.Errorf("tavily: %w", err)
	}

	results := make([]types.Result, 0, len(resp.Results))
	for _, h := range resp.Results {
		results = append(results, types.Result{
			Title:         h.Title,
			URL:           h.URL,
			Content:       h.Content,
			ProviderScore: h.Score,
		})
	}
	return results, nil
}
