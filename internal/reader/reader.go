// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader replaces search snippets with cleaned full-page text.
// Reading never fails the run: a page that cannot be fetched or decoded
// yields a ReadResult with Success false and empty Content.
package reader

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/research-agent/pkg/types"
)

const (
	// DefaultMaxChars caps the stored page text.
	DefaultMaxChars = 3000

	// DefaultLimit caps how many results are read per run.
	DefaultLimit = 6
)

// Fetcher reads one URL. Implementations report every failure through
// ReadResult.Success rather than an error.
type Fetcher interface {
	Read(ctx context.Context, url string) types.ReadResult
}

// Enrich reads the first limit results and replaces each Content with the
// page text when the read succeeds. Results past the limit are dropped;
// a failed read keeps the original, unenriched result.
func Enrich(ctx context.Context, f Fetcher, results []types.Result, limit int, w io.Writer) []types.Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(results) > limit {
		fmt.Fprintf(w, "reading first %d of %d results\n", limit, len(results))
		results = results[:limit]
	}

	enriched := make([]types.Result, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "reading %s\n", r.URL)
		page := f.Read(ctx, r.URL)
		if page.Success {
			r.Content = page.Content
			r.Enriched = true
		}
		enriched = append(enriched, r)
	}
	return enriched
}

func failed(url string) types.ReadResult {
	return types.ReadResult{URL: url, Content: "", Success: false}
}
