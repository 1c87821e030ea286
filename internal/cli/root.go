package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/sosgame/internal/factory"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "sos",
		Short: "Play SOS from the command line",
		Long: `sos plays a two player game of SOS, one move per invocation.

Each command loads the game from the save slot, applies one operation and
writes the game back. Use --server to play the game held by an API server
instead of a local save slot.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cfg.Output {
			case "text", "json":
			default:
				return errInvalidOutput(cfg.Output)
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.SaveFile, "save-file", cfg.SaveFile, "Save file path (env: SOS_SAVE_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "Save slot backend: file, memory, redis (env: SOS_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis backend (env: SOS_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Server, "server", cfg.Server, "API server URL, plays remotely when set (env: SOS_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newPlaceCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newHintCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// withSession opens the configured session for cmd, runs fn and closes it
func withSession(cmd *cobra.Command, fn func(s session) error) error {
	s, err := openSession(cfg, func() (*factory.App, error) {
		return factory.New(cfg.Factory(cfg.Logger(cmd.ErrOrStderr())))
	})
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	return fn(s)
}
