package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/nauticalab/confstore/pkg/config"
)

// CLIConfig represents the configuration for the CLI
type CLIConfig struct {
	// BaseDir resolves relative --file arguments
	BaseDir string `validate:"required"`
	// Indent is the indentation width used when saving
	Indent int `validate:"min=2,max=9"`
	// Token guards the mutating routes of the API server
	Token string
	// Port is the default port of the API server
	Port int `validate:"min=1,max=65535"`
	// RateLimit caps mutating API requests per client IP and minute; 0 disables it
	RateLimit int `validate:"min=0"`
}

// Keys read from the CLI configuration file.
const (
	keyBaseDir = "baseDir"
	keyIndent  = "indent"
	keyToken   = "server.token"
	keyPort    = "server.port"
	keyRate    = "server.rateLimit"
)

// Environment variables overriding the CLI configuration file.
const (
	EnvBaseDir = "CONFSTORE_BASE_DIR"
	EnvIndent  = "CONFSTORE_INDENT"
	EnvToken   = "CONFSTORE_TOKEN"
)

var cliValidate = validator.New(validator.WithRequiredStructEnabled())

// DefaultCLIConfigPath returns ~/.confstore/config.yaml
func DefaultCLIConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(homeDir, ".confstore", "config.yaml"), nil
}

// LoadCLIConfig loads configuration from multiple sources in order of precedence:
// 1. Flags (handled by caller)
// 2. Environment variables
// 3. Config file (~/.confstore/config.yaml)
func LoadCLIConfig() (*CLIConfig, error) {
	path, err := DefaultCLIConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadCLIConfigFrom(path)
}

// LoadCLIConfigFrom loads the CLI configuration from path, which may be
// missing, and applies environment overrides.
func LoadCLIConfigFrom(path string) (*CLIConfig, error) {
	file, err := config.NewFile(path, config.WithReporter(config.NopReporter))
	if err != nil {
		return nil, err
	}
	file.Load()
	if err := file.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// The defaults land in memory only; this file is never saved.
	cfg := &CLIConfig{
		BaseDir:   file.GetString(keyBaseDir, "."),
		Indent:    file.GetInt(keyIndent, config.DefaultIndent),
		Token:     file.GetString(keyToken, ""),
		Port:      file.GetInt(keyPort, 8080),
		RateLimit: file.GetInt(keyRate, 120),
	}

	if env := os.Getenv(EnvBaseDir); env != "" {
		cfg.BaseDir = env
	}
	if env := os.Getenv(EnvIndent); env != "" {
		indent, err := strconv.Atoi(env)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvIndent, env, err)
		}
		cfg.Indent = indent
	}
	if env := os.Getenv(EnvToken); env != "" {
		cfg.Token = env
	}

	if err := cliValidate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid CLI configuration: %w", err)
	}
	return cfg, nil
}
