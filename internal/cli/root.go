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
		Use:   "guestbook",
		Short: "CLI tool for the guestbook API",
		Long: `guestbook is a CLI tool for interacting with the guestbook JSON API.

It can read and sign the guestbook, request and redeem email validation
codes, send contact messages and read the visitor counter.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: GUESTBOOK_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newEntriesCmd())
	rootCmd.AddCommand(newSignCmd())
	rootCmd.AddCommand(newRequestCodeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newVisitorsCmd())
	rootCmd.AddCommand(newContactCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
