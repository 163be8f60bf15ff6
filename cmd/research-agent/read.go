package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/pkg/types"
)

var readCmd = &cobra.Command{
	Use:   "read <url>",
	Short: "Fetch one page and print its cleaned text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Reader.Backend == types.ReaderJina && creds.Jina == "" {
			return fmt.Errorf("missing credentials: JINA_API_KEY (or use --reader local)")
		}
		ctx, stop := signalContext(cmd)
		defer stop()

		page := newReader(cfg, progress(cmd)).Read(ctx, args[0])
		if !page.Success {
			return fmt.Errorf("could not read %s", args[0])
		}
		fmt.Fprintf(os.Stdout, "# %s\n\n%s\n", page.Title, page.Content)
		return nil
	},
}

func init() {
	addReaderFlags(readCmd)

	rootCmd.AddCommand(readCmd)
}
