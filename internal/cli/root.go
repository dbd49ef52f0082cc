package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "catanlb",
		Short: "CLI tool for the Catan leaderboard API",
		Long: `catanlb is a CLI tool for interacting with the Catan leaderboard JSON API.

Read commands work without credentials. Commands that change a board
(recording games, setting profiles, deleting the board) need the board
password, given with --password, CATANLB_PASSWORD or a saved password file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load password from file if not provided via flag/env
			if err := cfg.LoadPassword(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Password)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CATANLB_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Password, "password", cfg.Password, "Board password (env: CATANLB_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&cfg.PasswordFile, "password-file", cfg.PasswordFile, "Password file path (env: CATANLB_PASSWORD_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newLegacyCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// output returns a formatter writing to the command's streams
func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
