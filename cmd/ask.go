package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/drshika/warm-ai-agent/internal/config"
	"github.com/drshika/warm-ai-agent/internal/db"
	"github.com/drshika/warm-ai-agent/internal/errors"
	"github.com/drshika/warm-ai-agent/internal/executor"
	"github.com/drshika/warm-ai-agent/internal/llm"
	"github.com/drshika/warm-ai-agent/internal/logging"
	"github.com/drshika/warm-ai-agent/internal/schema"
	"github.com/drshika/warm-ai-agent/internal/session"
	"github.com/drshika/warm-ai-agent/internal/summarize"
	"github.com/drshika/warm-ai-agent/internal/translate"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Start an interactive question session",
	Long: `Starts the interactive loop: type a question, review the generated SQL,
confirm execution, and read the summarized answer. Type 'quit' to leave.`,
	RunE: runAsk,
}

var (
	askDBPath   string
	askModel    string
	askProvider string
	askLogLevel string
)

func init() {
	askCmd.Flags().StringVar(&askDBPath, "db-path", "", "Path to the DuckDB database file")
	askCmd.Flags().StringVar(&askModel, "model", "", "Model name to use for translation")
	askCmd.Flags().StringVar(&askProvider, "provider", "", "Model provider (openai, anthropic, ollama)")
	askCmd.Flags().StringVar(&askLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func runAsk(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfigWithOverrides(map[string]interface{}{
		"db-path":   askDBPath,
		"model":     askModel,
		"provider":  askProvider,
		"log-level": askLogLevel,
	})
	if err != nil {
		return err
	}

	cfg.ExpandAllPaths()

	if err := logging.InitializeLogger(cfg.Logging); err != nil {
		logging.SetupFallbackLogger()
		logging.Warnf("failed to initialize logger: %v", err)
	}

	ctx := cmd.Context()

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = " connecting to database..."
	sp.Start()

	conn, err := db.Connect(ctx, cfg.Database.Path, cfg.Database.ReadOnly)
	if err != nil {
		sp.Stop()
		return err
	}
	defer conn.Close()

	sp.Suffix = " loading schema..."

	descriptor, err := schema.Introspect(ctx, conn.DB())
	sp.Stop()

	if err != nil {
		logging.GetLogger().WithError(err).Warn("schema introspection failed, using built-in descriptor")

		descriptor = schema.Default()
	}

	llmConfig := llm.Config{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLMTimeoutDuration(),
	}

	llmClient := llm.NewClient(llmConfig)
	if err := llmClient.Configure(llmConfig); err != nil {
		return errors.Wrap(err, errors.ErrTypeConfig, "invalid model provider configuration")
	}

	exec := executor.New(conn.DB(), cfg.QueryTimeoutDuration(), cfg.Translator.ProbeRowLimit)

	sess := session.New(session.Options{
		Fast: translate.NewFastTranslator(llmClient, descriptor),
		Reasoning: translate.NewReasoningTranslator(
			llmClient,
			descriptor,
			exec,
			cfg.Translator.MaxReasoningSteps,
			cfg.Translator.ProbeRowLimit,
		),
		Runner:     exec,
		Summarizer: summarize.New(cfg.Translator.RowRenderLimit),
		Input:      os.Stdin,
		Output:     os.Stdout,
	})

	if err := sess.Run(ctx); err != nil {
		if errors.IsType(err, errors.ErrTypeConnection) {
			fmt.Fprintln(os.Stderr, "Lost connection to the database.")
		}

		return err
	}

	fmt.Println("Goodbye!")

	return nil
}
