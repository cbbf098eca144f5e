package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nauticalab/confstore/internal/cli"
	"github.com/nauticalab/confstore/pkg/config"
)

var (
	// Global flags (available to all commands)
	verbose  bool
	filePath string
	baseDir  string

	// Loaded in PersistentPreRunE
	cliConfig *cli.CLIConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "confstore",
	Short: "Read and edit YAML configuration files without losing their comments",
	Long: `confstore reads and edits YAML configuration files addressed by dotted paths.

Comments written directly above a key stay attached to that key, and a
"#> " banner at the top of the file is kept as the document header, across
any number of edits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadCLIConfig()
		if err != nil {
			return err
		}
		cliConfig = cfg
		return nil
	},
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "config.yml", "Configuration file, relative to the base directory")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "Base directory for relative files (default from ~/.confstore/config.yaml)")

	// Add subcommands to root
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(unsetCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(headerCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(remoteCmd)
}

// commandOptions merges the CLI configuration with the global flags
func commandOptions(cmd *cobra.Command) cli.Options {
	opts := cli.Options{
		File:    filePath,
		BaseDir: cliConfig.BaseDir,
		Indent:  cliConfig.Indent,
		Verbose: verbose,
		Out:     cmd.OutOrStdout(),
	}
	if cmd.Flags().Changed("base-dir") {
		opts.BaseDir = baseDir
	}
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts.Reporter = config.NewSlogReporter(logger)
	}
	return opts
}
