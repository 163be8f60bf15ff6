package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-agent/internal/llm"
	"github.com/pdiddy/research-agent/internal/reader"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

// loadConfig layers the pipeline configuration: defaults, then the config
// file, then RESEARCH_AGENT_* environment variables, then command flags.
func loadConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	if path := viper.ConfigFileUsed(); path != "" {
		var err error
		cfg, err = types.LoadPipelineConfig(path)
		if err != nil {
			return cfg, err
		}
	}
	defaultModel := types.DefaultPipelineConfig().LLM.Model
	modelSet := cfg.LLM.Model != defaultModel

	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = types.LLMProvider(viper.GetString("llm.provider"))
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
		modelSet = true
	}
	if viper.IsSet("planner.questions") {
		cfg.Planner.Questions = viper.GetInt("planner.questions")
	}
	if viper.IsSet("search.max_results") {
		cfg.Search.MaxResults = viper.GetInt("search.max_results")
	}
	if viper.IsSet("reader.backend") {
		cfg.Reader.Backend = types.ReaderBackend(viper.GetString("reader.backend"))
	}
	if viper.IsSet("reader.limit") {
		cfg.Reader.Limit = viper.GetInt("reader.limit")
	}
	if viper.IsSet("filter.threshold") {
		cfg.Filter.Threshold = viper.GetFloat64("filter.threshold")
	}
	if viper.IsSet("filter.concurrency") {
		cfg.Filter.Concurrency = viper.GetInt("filter.concurrency")
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("provider") {
		p, _ := flags.GetString("provider")
		cfg.LLM.Provider = types.LLMProvider(p)
	}
	if changed("model") {
		cfg.LLM.Model, _ = flags.GetString("model")
		modelSet = true
	}
	if changed("questions") {
		cfg.Planner.Questions, _ = flags.GetInt("questions")
	}
	if changed("max-results") {
		cfg.Search.MaxResults, _ = flags.GetInt("max-results")
	}
	if changed("reader") {
		b, _ := flags.GetString("reader")
		cfg.Reader.Backend = types.ReaderBackend(b)
	}
	if changed("read-limit") {
		cfg.Reader.Limit, _ = flags.GetInt("read-limit")
	}
	if changed("threshold") {
		cfg.Filter.Threshold, _ = flags.GetFloat64("threshold")
	}
	if changed("concurrency") {
		cfg.Filter.Concurrency, _ = flags.GetInt("concurrency")
	}

	// The default model name belongs to the default provider.
	if !modelSet && cfg.LLM.Provider != types.ProviderGroq && cfg.LLM.Provider != "" {
		cfg.LLM.Model = ""
	}
	if cfg.Filter.Threshold < 0 || cfg.Filter.Threshold > 1 {
		return cfg, fmt.Errorf("threshold %v out of range [0,1]", cfg.Filter.Threshold)
	}
	switch cfg.Reader.Backend {
	case types.ReaderJina, types.ReaderLocal:
	default:
		return cfg, fmt.Errorf("unknown reader %q: use jina or local", cfg.Reader.Backend)
	}

	cfg.LLM.APIKey = creds.LLMKey(cfg.LLM.Provider)
	cfg.Search.APIKey = creds.Tavily
	cfg.Reader.APIKey = creds.Jina
	return cfg, nil
}

// addModelFlags registers the language-model flags shared by commands.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "language model provider: groq or anthropic (default groq)")
	cmd.Flags().String("model", "", "model identifier (default llama-3.3-70b-versatile for groq)")
}

// addReaderFlags registers the reader flags shared by commands.
func addReaderFlags(cmd *cobra.Command) {
	cmd.Flags().String("reader", "", "page reader: jina or local (default jina)")
}

func newModel(cfg types.PipelineConfig) (llm.Model, error) {
	return llm.NewModel(cfg.LLM)
}

func newSearchProvider(cfg types.PipelineConfig) search.Provider {
	return &search.Tavily{
		APIKey:    cfg.Search.APIKey,
		UserAgent: cfg.Search.UserAgent,
		Client:    &http.Client{},
	}
}

func newReader(cfg types.PipelineConfig, log io.Writer) reader.Fetcher {
	if cfg.Reader.Backend == types.ReaderLocal {
		return reader.NewLocal(cfg.Reader.UserAgent, cfg.Reader.Timeout, cfg.Reader.MaxChars, log)
	}
	return reader.NewJina(cfg.Reader.APIKey, cfg.Reader.Timeout, cfg.Reader.MaxChars, log)
}
