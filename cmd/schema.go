package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drshika/warm-ai-agent/internal/config"
	"github.com/drshika/warm-ai-agent/internal/db"
	"github.com/drshika/warm-ai-agent/internal/logging"
	"github.com/drshika/warm-ai-agent/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the database schema used for query generation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		cfg.ExpandAllPaths()
		logging.SetupFallbackLogger()

		ctx := cmd.Context()

		conn, err := db.Connect(ctx, cfg.Database.Path, cfg.Database.ReadOnly)
		if err != nil {
			fmt.Println("Database unavailable, showing the built-in schema:")
			fmt.Println()
			fmt.Print(schema.Default().Describe())

			return nil
		}
		defer conn.Close()

		descriptor, err := schema.Introspect(ctx, conn.DB())
		if err != nil {
			descriptor = schema.Default()
		}

		fmt.Print(descriptor.Describe())

		return nil
	},
}
