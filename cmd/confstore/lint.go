package main

import (
	"github.com/spf13/cobra"

	"github.com/nauticalab/confstore/internal/cli"
)

var (
	// Lint command flags
	lintDir string
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check configuration files for content that will not survive a save",
	Long: `Check configuration files for common issues.

This command checks for:
- Keys containing "." that cannot be addressed by dotted path
- Comments whose key no longer exists
- Multi-line strings that will be saved as lists
- Files that cannot be read or parsed

Examples:
  confstore lint --file plugins/shop.yml
  confstore lint --dir ./plugins`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunLint(commandOptions(cmd), cli.LintOptions{Dir: lintDir})
	},
}

func init() {
	lintCmd.Flags().StringVar(&lintDir, "dir", "", "Lint every .yml and .yaml file in this directory")
}
