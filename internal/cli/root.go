package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/lifecounter/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// newApp builds the application; tests replace it to inject mocks
var newApp = factory.New

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var envErr error
	cfg, envErr = LoadConfig()
	if envErr != nil {
		cfg = &Config{Output: OutputText, FeedbackWindow: 0}
	}

	rootCmd := &cobra.Command{
		Use:   "lifecounter",
		Short: "Life, commander damage and poison tracker for tabletop games",
		Long: `lifecounter tracks life totals for a multiplayer tabletop match.

Set up a table with "lifecounter play", adjust counters as the game goes,
and get a damage breakdown when the game ends. Nothing is saved once the
program exits.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			var err error
			app, err = newApp(factory.Config{
				FormatsFile:    cfg.FormatsFile,
				FeedbackWindow: cfg.FeedbackWindow,
				Logger:         logger,
			})
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: LIFECOUNTER_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose logging (env: LIFECOUNTER_VERBOSE)")
	rootCmd.PersistentFlags().DurationVar(&cfg.FeedbackWindow, "feedback-window", cfg.FeedbackWindow, "How long adjustment feedback keeps accumulating (env: LIFECOUNTER_FEEDBACK_WINDOW)")
	rootCmd.PersistentFlags().StringVar(&cfg.FormatsFile, "formats-file", cfg.FormatsFile, "YAML file overriding format starting values (env: LIFECOUNTER_FORMATS_FILE)")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newRollCmd())
	rootCmd.AddCommand(newFlipCmd())
	rootCmd.AddCommand(newFormatsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
