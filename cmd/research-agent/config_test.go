package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/internal/secrets"
	"github.com/pdiddy/research-agent/pkg/types"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("questions", 3, "")
	cmd.Flags().Int("read-limit", 6, "")
	cmd.Flags().Float64("threshold", 0.6, "")
	addModelFlags(cmd)
	addReaderFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	creds = secrets.Credentials{Groq: "gsk", Tavily: "tvly", Jina: "jina"}

	cfg, err := loadConfig(newFlagCmd(t))
	require.NoError(t, err)

	assert.Equal(t, types.ProviderGroq, cfg.LLM.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, "gsk", cfg.LLM.APIKey)
	assert.Equal(t, "tvly", cfg.Search.APIKey)
	assert.Equal(t, "jina", cfg.Reader.APIKey)
	assert.Equal(t, 3, cfg.Planner.Questions)
	assert.Equal(t, 6, cfg.Reader.Limit)
	assert.Equal(t, 0.6, cfg.Filter.Threshold)
}

func TestLoadConfigFlags(t *testing.T) {
	creds = secrets.Credentials{Groq: "gsk", Anthropic: "sk-ant"}

	cfg, err := loadConfig(newFlagCmd(t, "--questions", "5", "--threshold", "0.75", "--read-limit", "2", "--reader", "local"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Planner.Questions)
	assert.Equal(t, 0.75, cfg.Filter.Threshold)
	assert.Equal(t, 2, cfg.Reader.Limit)
	assert.Equal(t, types.ReaderLocal, cfg.Reader.Backend)

	cfg, err = loadConfig(newFlagCmd(t, "--provider", "anthropic"))
	require.NoError(t, err)
	assert.Equal(t, types.ProviderAnthropic, cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.Model, "groq default model must not leak to another provider")
	assert.Equal(t, "sk-ant", cfg.LLM.APIKey)

	cfg, err = loadConfig(newFlagCmd(t, "--provider", "anthropic", "--model", "claude-haiku-4-5"))
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5", cfg.LLM.Model)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	_, err := loadConfig(newFlagCmd(t, "--threshold", "1.5"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")

	_, err = loadConfig(newFlagCmd(t, "--reader", "browser"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "browser")
}
