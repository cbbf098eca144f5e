package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nauticalab/confstore/internal/client"
)

var (
	// Remote command flags
	remoteURL string
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Work with a configuration served by 'confstore serve'",
	Long: `Work with a configuration served by 'confstore serve'.

The token is taken from the CLI configuration (server.token or CONFSTORE_TOKEN).
Changes made with 'remote set' are kept by the server until 'remote save'.`,
}

var remoteGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print a value from the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newRemoteClient().GetValue(context.Background(), args[0])
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(resp.Value)
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", args[0], err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var remoteSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a value on the server",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value any
		if err := yaml.Unmarshal([]byte(args[1]), &value); err != nil {
			return fmt.Errorf("failed to parse value %q: %w", args[1], err)
		}
		_, err := newRemoteClient().SetValue(context.Background(), args[0], value)
		return err
	},
}

var remoteSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Make the server write its changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newRemoteClient().Save(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
		return nil
	},
}

var remoteReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Make the server discard its changes and read the file again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newRemoteClient().Reload(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
		return nil
	},
}

func init() {
	remoteCmd.PersistentFlags().StringVar(&remoteURL, "url", "http://localhost:8080", "Base URL of the confstore server")

	remoteCmd.AddCommand(remoteGetCmd)
	remoteCmd.AddCommand(remoteSetCmd)
	remoteCmd.AddCommand(remoteSaveCmd)
	remoteCmd.AddCommand(remoteReloadCmd)
}

func newRemoteClient() *client.Client {
	return client.NewClient(client.ClientConfig{
		BaseURL: remoteURL,
		Token:   cliConfig.Token,
	})
}
