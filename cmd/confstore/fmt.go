package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nauticalab/confstore/internal/cli"
)

var (
	// Fmt command flags
	fmtIndent int
)

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite the file in canonical form",
	Long: `Load and save the file, which rewrites it in canonical form.

Comments stay attached to their keys, multi-line strings become lists and
indentation is normalized.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunFmt(commandOptions(cmd), fmtIndent)
	},
}

func init() {
	fmtCmd.Flags().IntVar(&fmtIndent, "indent", 0, "Indentation width (2-9, default from the CLI configuration)")
}

// unescapeNewlines turns the two characters `\n` into line breaks
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
