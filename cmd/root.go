// Package cmd implements the warm-agent CLI commands.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "warm-agent",
	Short: "Ask natural-language questions about the WARM weather database",
	Long: `warm-agent translates natural-language questions into read-only SQL
against the WARM (Water and Atmospheric Resources Monitoring) reporting
database. Every generated query is safety-checked and shown for explicit
confirmation before it runs; results are summarized as readable answers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	ctx := context.Background()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(configCmd)
}
