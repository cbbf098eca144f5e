package main

import (
	"github.com/spf13/cobra"

	"github.com/nauticalab/confstore/internal/cli"
)

var (
	// Header command flags
	headerRemove bool
)

var headerCmd = &cobra.Command{
	Use:   "header [path] [text]",
	Short: "Print, set or remove the comment attached to a path",
	Long: `Print, set or remove the comment attached to a path.

Without a path the document header is addressed. Use "\n" in the text for
multi-line comments.

Examples:
  confstore header                          # print the document header
  confstore header "" "Shop configuration"  # set the document header
  confstore header shop.price "Price in coins"
  confstore header shop.price --remove`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hopts := cli.HeaderOptions{Remove: headerRemove}
		if len(args) > 0 {
			hopts.Path = args[0]
		}
		if len(args) > 1 {
			hopts.Text = unescapeNewlines(args[1])
		}
		return cli.RunHeader(commandOptions(cmd), hopts)
	},
}

func init() {
	headerCmd.Flags().BoolVar(&headerRemove, "remove", false, "Remove the header")
}
