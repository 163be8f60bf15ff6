package types

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no client timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LLMProvider identifies the language-model backend.
type LLMProvider string

const (
	ProviderGroq      LLMProvider = "groq"
	ProviderAnthropic LLMProvider = "anthropic"
)

// LLMConfig holds settings shared by every stage that calls a language model.
type LLMConfig struct {
	// Provider selects the backend: groq or anthropic.
	Provider LLMProvider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "llama-3.3-70b-versatile").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens bounds the completion length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// PlannerConfig holds settings for the planner stage.
type PlannerConfig struct {
	// Questions is the number of sub-questions requested from the model (default 3).
	Questions int `json:"questions" yaml:"questions"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the search provider key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the number of hits requested per sub-question (default 3).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ReaderBackend identifies the page-reading implementation.
type ReaderBackend string

const (
	ReaderJina  ReaderBackend = "jina"
	ReaderLocal ReaderBackend = "local"
)

// ReaderConfig holds settings for the reader stage.
type ReaderConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the reader: jina (content-extraction proxy) or local.
	Backend ReaderBackend `json:"backend" yaml:"backend"`

	// APIKey is the bearer token for the content-extraction proxy.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Limit caps how many raw results are read (default 6).
	Limit int `json:"limit" yaml:"limit"`

	// MaxChars caps the stored page text (default 3000).
	MaxChars int `json:"max_chars" yaml:"max_chars"`
}

// FilterConfig holds settings for the filter stage.
type FilterConfig struct {
	// Threshold is the minimum relevance score kept (default 0.6).
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// Concurrency bounds in-flight scoring calls (default 1, strictly serial).
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	LLM     LLMConfig     `json:"llm" yaml:"llm"`
	Planner PlannerConfig `json:"planner" yaml:"planner"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	Reader  ReaderConfig  `json:"reader" yaml:"reader"`
	Filter  FilterConfig  `json:"filter" yaml:"filter"`
}

// DefaultPipelineConfig returns the configuration used when nothing is overridden.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		LLM: LLMConfig{
			Provider:  ProviderGroq,
			Model:     "llama-3.3-70b-versatile",
			MaxTokens: 4096,
		},
		Planner: PlannerConfig{Questions: 3},
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{UserAgent: "research-agent/0.1"},
			MaxResults: 3,
		},
		Reader: ReaderConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   15 * time.Second,
				UserAgent: "research-agent/0.1",
			},
			Backend:  ReaderJina,
			Limit:    6,
			MaxChars: 3000,
		},
		Filter: FilterConfig{
			Threshold:   0.6,
			Concurrency: 1,
		},
	}
}

// LoadPipelineConfig reads a YAML file over the defaults. Fields absent
// from the file keep their default values.
func LoadPipelineConfig(path string) (PipelineConfig, error) {
	cfg := DefaultPipelineConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
