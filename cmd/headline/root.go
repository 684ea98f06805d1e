// Package main provides the entry point for the headline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for headline.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headline",
		Short: "Sample, translate, and analyze news section headlines",
		Long: `Headline samples the latest articles from a news section page,
extracts their titles, excerpts, and cover images, translates the titles,
and reports word frequencies across the translated titles.

Runs are stored locally so past results can be listed and re-rendered
with the history command.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
