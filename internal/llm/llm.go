// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm provides the language-model backends used by the planner,
// filter, and writer stages. Every backend satisfies Model so stages can be
// driven by deterministic stubs in tests.
package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/research-agent/pkg/types"
)

// Model sends one user prompt to a language model and returns the text of
// the completion.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f ModelFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

const defaultMaxTokens = 4096

// NewModel constructs the backend selected by cfg.Provider. No client
// timeout is applied: model calls block until the provider answers or ctx ends.
func NewModel(cfg types.LLMConfig) (Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: API key is missing", cfg.Provider)
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	switch cfg.Provider {
	case types.ProviderGroq, "":
		model := cfg.Model
		if model == "" {
			model = DefaultGroqModel
		}
		return &Groq{
			APIKey:    cfg.APIKey,
			Model:     model,
			MaxTokens: maxTokens,
			Client:    &http.Client{},
		}, nil
	case types.ProviderAnthropic:
		return NewAnthropic(cfg.APIKey, cfg.Model, maxTokens), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}
