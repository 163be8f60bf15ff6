// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-agent CLI.
// run executes the full planner, searcher, reader, filter, writer chain;
// plan, search, read, and score exercise one stage each.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-agent/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// creds holds the API keys resolved at startup.
var creds secrets.Credentials

// rootCmd is the base command for the research-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "research-agent",
	Short: "Turn a research topic into a cited report",
	Long: `research-agent breaks a topic into sub-questions, searches the web for each,
reads the top pages, keeps the relevant ones, and writes a structured report
with inline citations and a Sources section.

API keys come from the environment (GROQ_API_KEY, TAVILY_API_KEY, JINA_API_KEY,
ANTHROPIC_API_KEY), a .env file, or one file per key in .secrets/.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		c, err := secrets.Resolve(".secrets/", envFile, os.LookupEnv)
		if err != nil {
			return err
		}
		creds = c
		if len(c.Sources) > 0 {
			keys := make([]string, 0, len(c.Sources))
			for k := range c.Sources {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(progress(cmd), "Loaded credentials: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-agent.yaml or ~/.config/research-agent/research-agent.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file with API keys")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output on stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-agent"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_AGENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		quiet, _ := rootCmd.PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// progress returns where stage progress lines go.
func progress(cmd *cobra.Command) io.Writer {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return io.Discard
	}
	return os.Stderr
}

// signalContext derives the command context, cancelled on Ctrl-C or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
