package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nauticalab/confstore/internal/api"
	"github.com/nauticalab/confstore/internal/cli"
)

var (
	// Serve command flags
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the configuration file over HTTP",
	Long: `Serve the configuration file over an HTTP API.

Changes made through the API stay in memory until POST /api/v1/save.
When a token is configured (server.token in ~/.confstore/config.yaml or
CONFSTORE_TOKEN) the mutating endpoints require it as a Bearer token.
Mutating requests are limited per client IP (server.rateLimit per minute,
0 disables the limit).`,
	Args: cobra.NoArgs,
	RunE: runServer,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from the CLI configuration)")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	file, err := cli.OpenFile(commandOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to open configuration: %w", err)
	}

	port := cliConfig.Port
	if servePort != 0 {
		port = servePort
	}

	server, err := api.NewServer(api.ServerConfig{
		Port:      port,
		File:      file,
		Token:     cliConfig.Token,
		RateLimit: cliConfig.RateLimit,
		Version:   version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: goVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Printf("Serving %s on :%d\n", file.Path(), port)
	fmt.Printf("\nEndpoints:\n")
	fmt.Printf("  GET    /api/v1/health            - Health check\n")
	fmt.Printf("  GET    /api/v1/version           - Version information\n")
	fmt.Printf("  GET    /api/v1/keys?deep=true    - List keys\n")
	fmt.Printf("  GET    /api/v1/values/{path}     - Read a value\n")
	fmt.Printf("  PUT    /api/v1/values/{path}     - Set a value\n")
	fmt.Printf("  DELETE /api/v1/values/{path}     - Remove a value\n")
	fmt.Printf("  GET    /api/v1/headers/{path}    - Read a header (_ = document header)\n")
	fmt.Printf("  PUT    /api/v1/headers/{path}    - Set a header\n")
	fmt.Printf("  DELETE /api/v1/headers/{path}    - Remove a header\n")
	fmt.Printf("  POST   /api/v1/reload            - Discard changes and reload the file\n")
	fmt.Printf("  POST   /api/v1/save              - Write changes to the file\n")
	fmt.Printf("\n")

	if err := server.StartWithContext(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	fmt.Println("Server shutdown complete")
	return nil
}
