// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the five research stages in a fixed order over one
// shared ResearchState: planner, searcher, reader, filter, writer.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/research-agent/internal/filter"
	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/internal/planner"
	"github.com/pdiddy/research-agent/internal/reader"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/internal/writer"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Deps holds the external collaborators a pipeline calls.
type Deps struct {
	Model  llm.Model
	Search search.Provider
	Reader reader.Fetcher

	// Log receives progress lines. Nil discards them.
	Log io.Writer
}

// Stage is one step of the chain. It writes only its own state field.
type Stage struct {
	Name string
	Run  func(ctx context.Context, state *types.ResearchState) error
}

// Pipeline is a fixed forward chain of stages.
type Pipeline struct {
	deps   Deps
	cfg    types.PipelineConfig
	stages []Stage

	now   func() time.Time
	newID func() string
}

// New builds the planner, searcher, reader, filter, writer chain.
func New(deps Deps, cfg types.PipelineConfig) (*Pipeline, error) {
	if deps.Model == nil {
		return nil, errors.New("pipeline: language model is required")
	}
	if deps.Search == nil {
		return nil, errors.New("pipeline: search provider is required")
	}
	if deps.Reader == nil {
		return nil, errors.New("pipeline: reader is required")
	}
	if deps.Log == nil {
		deps.Log = io.Discard
	}

	p := &Pipeline{
		deps:  deps,
		cfg:   cfg,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	p.stages = []Stage{
		{Name: "planner", Run: p.plan},
		{Name: "searcher", Run: p.search},
		{Name: "reader", Run: p.read},
		{Name: "filter", Run: p.filter},
		{Name: "writer", Run: p.write},
	}
	return p, nil
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run executes every stage in order for topic and stops at the first
// failure. On error the partially filled state is returned with it.
func (p *Pipeline) Run(ctx context.Context, topic string) (*types.ResearchState, error) {
	state := types.NewResearchState(p.newID(), topic)
	state.StartedAt = p.now()
	fmt.Fprintf(p.deps.Log, "research run %s: %q\n", state.RunID, topic)

	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return state, fmt.Errorf("stage %s: %w", s.Name, err)
		}
		fmt.Fprintf(p.deps.Log, "== %s\n", s.Name)
		if err := s.Run(ctx, state); err != nil {
			return state, fmt.Errorf("stage %s: %w", s.Name, err)
		}
	}

	state.FinishedAt = p.now()
	fmt.Fprintf(p.deps.Log, "research run %s done in %s\n", state.RunID, state.FinishedAt.Sub(state.StartedAt).Round(time.Millisecond))
	return state, nil
}

func (p *Pipeline) plan(ctx context.Context, state *types.ResearchState) error {
	questions, err := planner.Plan(ctx, p.deps.Model, state.Topic, p.cfg.Planner.Questions, p.deps.Log)
	if err != nil {
		return err
	}
	state.Subquestions = questions
	return nil
}

func (p *Pipeline) search(ctx context.Context, state *types.ResearchState) error {
	results, err := search.SearchAll(ctx, p.deps.Search, state.Subquestions, p.cfg.Search.MaxResults, p.deps.Log)
	if err != nil {
		return err
	}
	state.RawResults = results
	return nil
}

func (p *Pipeline) read(ctx context.Context, state *types.ResearchState) error {
	state.RawResults = reader.Enrich(ctx, p.deps.Reader, state.RawResults, p.cfg.Reader.Limit, p.deps.Log)
	return nil
}

func (p *Pipeline) filter(ctx context.Context, state *types.ResearchState) error {
	kept, err := filter.Apply(ctx, p.deps.Model, state.Topic, state.RawResults, p.cfg.Filter, p.deps.Log)
	if err != nil {
		return err
	}
	state.FilteredResults = kept
	return nil
}

func (p *Pipeline) write(ctx context.Context, state *types.ResearchState) error {
	report, err := writer.Write(ctx, p.deps.Model, state.Topic, state.FilteredResults, p.deps.Log)
	if err != nil {
		return err
	}
	state.Report = report
	return nil
}
