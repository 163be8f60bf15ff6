// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-agent pipeline.
// The ResearchState record flows through the planner, searcher, reader,
// filter, and writer stages; each stage writes only its own output field.
package types

import "time"

// Result is a single web page record flowing through the pipeline. The
// searcher creates it, the reader replaces Content in place, the filter
// annotates RelevanceScore in place, and the writer only reads it.
type Result struct {
	// Title is the page title as returned by the search provider.
	Title string `json:"title" yaml:"title"`

	// URL is the page address and the deduplication key.
	URL string `json:"url" yaml:"url"`

	// Content is the search snippet, replaced by the full page text
	// (truncated) when the reader succeeds.
	Content string `json:"content" yaml:"content"`

	// ProviderScore is the search provider's own ranking score (0 when absent).
	ProviderScore float64 `json:"score" yaml:"score"`

	// RelevanceScore is the language-model relevance judgment in [0,1],
	// rounded to 2 decimals. Nil until the filter stage has run.
	RelevanceScore *float64 `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`

	// Enriched reports whether the reader replaced Content with page text.
	Enriched bool `json:"enriched" yaml:"enriched"`
}

// Score returns the relevance score, or 0 when the result was never scored.
func (r Result) Score() float64 {
	if r.RelevanceScore == nil {
		return 0
	}
	return *r.RelevanceScore
}

// SetScore records a relevance score on the result.
func (r *Result) SetScore(score float64) {
	r.RelevanceScore = &score
}

// ReadResult is the outcome of reading one URL. Success is false (and
// Content empty) whenever the page could not be fetched or decoded.
type ReadResult struct {
	URL     string `json:"url" yaml:"url"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Success bool   `json:"success" yaml:"success"`
}

// ResearchState is the shared record passed along the five-stage chain.
// It is created once per pipeline run.
type ResearchState struct {
	// RunID identifies one pipeline invocation in progress output and state dumps.
	RunID string `json:"run_id" yaml:"run_id"`

	// Topic is the research topic supplied by the caller.
	Topic string `json:"topic" yaml:"topic"`

	// Subquestions is the planner output, in model order.
	Subquestions []string `json:"subquestions" yaml:"subquestions"`

	// RawResults holds at most one entry per distinct URL, in first-seen order.
	RawResults []Result `json:"raw_results" yaml:"raw_results"`

	// FilteredResults is the order-preserving subsequence of RawResults whose
	// relevance score meets the filter threshold.
	FilteredResults []Result `json:"filtered_results" yaml:"filtered_results"`

	// Report is the writer output, verbatim.
	Report string `json:"report" yaml:"report"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
}

// NewResearchState returns an empty state for topic.
func NewResearchState(runID, topic string) *ResearchState {
	return &ResearchState{
		RunID:           runID,
		Topic:           topic,
		Subquestions:    []string{},
		RawResults:      []Result{},
		FilteredResults: []Result{},
	}
}

// Clip returns at most n characters (runes) of s.
func Clip(s string, n int) string {
	if n < 0 {
		return s
	}
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
