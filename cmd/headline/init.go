package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/headline.yaml
var configTemplate embed.FS

// configFileName is the default profile file name.
const configFileName = ".headline"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new headline profile file",
		Long: `Init creates a new .headline profile file in the current directory.

The generated file includes:
- Global defaults for counts, languages, and timeouts
- Commented examples for per-section overrides
- Documentation for all available options

Examples:
  # Create .headline in current directory
  headline init

  # Create profile file at a specific path
  headline init -o myprofile.yaml

  # Force overwrite existing file
  headline init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the profile")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing profile file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("profile file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/headline.yaml")
	if err != nil {
		return fmt.Errorf("failed to read profile template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created profile file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure per-section settings such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Source and target languages")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Article counts and excerpt lengths")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Stop words for frequency analysis")
	return nil
}
