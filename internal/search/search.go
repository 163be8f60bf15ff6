// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web-search provider for each sub-question and
// returns unified, URL-deduplicated results.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/research-agent/pkg/types"
)

// DefaultMaxResults is the per-query hit count when max <= 0.
const DefaultMaxResults = 5

// Provider searches the web for one query. Hits come back with the snippet
// as Content and without raw page bodies.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]types.Result, error)
}

// Search runs one provider call for query. There is no retry and no
// pagination; a provider error is returned wrapped.
func Search(ctx context.Context, p Provider, query string, maxResults int, w io.Writer) ([]types.Result, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	fmt.Fprintf(w, "searching %q\n", query)

	results, err := p.Search(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("%s search %q: %w", p.Name(), query, err)
	}
	fmt.Fprintf(w, "found %d results\n", len(results))
	return results, nil
}

// SearchAll searches each question in order, one call at a time, and
// returns the deduplicated union of the hits.
func SearchAll(ctx context.Context, p Provider, questions []string, maxResults int, w io.Writer) ([]types.Result, error) {
	var all []types.Result
	for _, q := range questions {
		results, err := Search(ctx, p, q, maxResults, w)
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}
	deduped, removed := Dedup(all)
	if removed > 0 {
		fmt.Fprintf(w, "removed %d duplicate URLs\n", removed)
	}
	return deduped, nil
}

// Dedup keeps the first result seen for each URL, preserving order. It
// returns the unique results and the number removed.
func Dedup(results []types.Result) ([]types.Result, int) {
	seen := make(map[string]bool, len(results))
	unique := make([]types.Result, 0, len(results))
	removed := 0
	for _, r := range results {
		if seen[r.URL] {
			removed++
			continue
		}
		seen[r.URL] = true
		unique = append(unique, r)
	}
	return unique, removed
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.Result, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-6s  %s\n", "Rank", "Title", "Score", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-60s  %-6.2f  %s\n",
			i+1, truncate(r.Title, 60), r.ProviderScore, r.URL)
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
