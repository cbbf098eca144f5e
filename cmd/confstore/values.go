package main

import (
	"github.com/spf13/cobra"

	"github.com/nauticalab/confstore/internal/cli"
)

var (
	// Keys command flags
	keysDeep bool
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the value at a dotted path",
	Long: `Print the value at a dotted path.

Sections are printed as YAML together with the comments of their keys.

Examples:
  confstore get server.port
  confstore get server --file plugins/shop.yml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunGet(commandOptions(cmd), args[0])
	},
}

var setCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Store a value at a dotted path and save the file",
	Long: `Store a value at a dotted path and save the file.

The value is parsed as YAML, so numbers, booleans and flow collections keep
their type. Quote a value to store it as a string.

Examples:
  confstore set server.port 8080
  confstore set server.hosts "[a.example.com, b.example.com]"
  confstore set motd "'123'"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunSet(commandOptions(cmd), args[0], args[1])
	},
}

var unsetCmd = &cobra.Command{
	Use:   "unset <path>",
	Short: "Remove the value at a dotted path and save the file",
	Long: `Remove the value at a dotted path and save the file.

Parents left empty by the removal are removed as well. The comment attached
to the path is dropped from the saved file along with the value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunUnset(commandOptions(cmd), args[0])
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys of the file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunKeys(commandOptions(cmd), keysDeep)
	},
}

func init() {
	keysCmd.Flags().BoolVar(&keysDeep, "deep", false, "List every path instead of the top-level keys")
}
