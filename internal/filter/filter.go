// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter scores each result's relevance to the topic with a
// language model and keeps those meeting a threshold.
package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/pkg/types"
)

const (
	// DefaultThreshold is the minimum relevance score kept.
	DefaultThreshold = 0.6

	// scoringChars is how much result content the model sees.
	scoringChars = 500
)

var scorePromptTmpl = template.Must(template.New("score").Parse(`Topic: {{.Topic}}

Content: {{.Content}}

Rate how relevant this content is to the topic on a scale of 0 to 10.
Reply with ONLY a number between 0 and 10. Nothing else.
`))

// Score asks the model how relevant content is to topic. Only the first
// 500 characters of content are sent. A reply that is not a number maps to
// 0.0; a model call error is returned.
func Score(ctx context.Context, model llm.Model, topic, content string) (float64, error) {
	prompt, err := renderPrompt(topic, types.Clip(content, scoringChars))
	if err != nil {
		return 0, fmt.Errorf("rendering prompt: %w", err)
	}
	resp, err := model.Complete(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("scoring relevance: %w", err)
	}
	return ParseScore(resp), nil
}

// ParseScore converts a 0-10 model reply to a score in [0,1] rounded to
// 2 decimals. Unparseable replies yield 0.
func ParseScore(resp string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(resp), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	score := math.Max(0, math.Min(1, v/10))
	return math.Round(score*100) / 100
}

// Apply scores every result, records the score on it in place, and returns
// the results whose score is at least cfg.Threshold, in input order.
// With cfg.Concurrency > 1 up to that many scoring calls are in flight.
func Apply(ctx context.Context, model llm.Model, topic string, results []types.Result, cfg types.FilterConfig, w io.Writer) ([]types.Result, error) {
	fmt.Fprintf(w, "filtering %d results for relevance\n", len(results))

	limit := cfg.Concurrency
	if limit <= 0 {
		limit = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range results {
		g.Go(func() error {
			score, err := Score(gctx, model, topic, results[i].Content)
			if err != nil {
				return fmt.Errorf("result %s: %w", results[i].URL, err)
			}
			results[i].SetScore(score)

			mu.Lock()
			fmt.Fprintf(w, "  score %.2f  %s\n", score, types.Clip(results[i].Title, 60))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := Keep(results, cfg.Threshold)
	fmt.Fprintf(w, "kept %d relevant results\n", len(kept))
	return kept, nil
}

// Keep returns the scored results at or above threshold, preserving order.
func Keep(results []types.Result, threshold float64) []types.Result {
	kept := []types.Result{}
	for _, r := range results {
		if r.RelevanceScore != nil && *r.RelevanceScore >= threshold {
			kept = append(kept, r)
		}
	}
	return kept
}

func renderPrompt(topic, content string) (string, error) {
	var buf bytes.Buffer
	err := scorePromptTmpl.Execute(&buf, struct {
		Topic   string
		Content string
	}{Topic: topic, Content: content})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
