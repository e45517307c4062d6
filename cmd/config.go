package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drshika/warm-ai-agent/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		fmt.Println("Database:")
		fmt.Printf("  path:          %s\n", cfg.Database.Path)
		fmt.Printf("  query_timeout: %s\n", cfg.Database.QueryTimeout)
		fmt.Printf("  read_only:     %t\n", cfg.Database.ReadOnly)
		fmt.Println("Model provider:")
		fmt.Printf("  provider: %s\n", cfg.LLM.Provider)
		fmt.Printf("  model:    %s\n", cfg.LLM.Model)
		fmt.Printf("  api_key:  %s\n", maskSecret(cfg.LLM.APIKey))
		fmt.Printf("  base_url: %s\n", cfg.LLM.BaseURL)
		fmt.Println("Translator:")
		fmt.Printf("  max_reasoning_steps: %d\n", cfg.Translator.MaxReasoningSteps)
		fmt.Printf("  row_render_limit:    %d\n", cfg.Translator.RowRenderLimit)
		fmt.Printf("  probe_row_limit:     %d\n", cfg.Translator.ProbeRowLimit)
		fmt.Println("Logging:")
		fmt.Printf("  level:  %s\n", cfg.Logging.Level)
		fmt.Printf("  format: %s\n", cfg.Logging.Format)
		fmt.Printf("  output: %s\n", cfg.Logging.Output)

		return nil
	},
}

// maskSecret hides all but the last four characters of a secret
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}

	if len(secret) <= 4 {
		return "****"
	}

	return "****" + secret[len(secret)-4:]
}
