package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"instalytics/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage instalytics configuration.

Configuration is loaded from, in order of precedence:
  - Environment variables (INSTALYTICS_*, GEMINI_API_KEY)
  - A .env file in the working directory
  - The configuration file
  - Default values

The session cookie and Gemini API key are never stored in the
configuration file.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	RunE:  runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging all sources.

The Gemini API key is excluded from the output.`,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

const exampleConfig = `# Instalytics configuration file
#
# Environment variables override these values, e.g.
# INSTALYTICS_MAX_POSTS, INSTALYTICS_REQUESTS_PER_MINUTE,
# INSTALYTICS_GEMINI_MODEL, INSTALYTICS_LOG_LEVEL.
#
# Secrets never belong in this file. The session cookie is supplied per
# run (--session flag, INSTALYTICS_SESSION env var, or prompt) and the
# Gemini API key is read from GEMINI_API_KEY only.

fetch:
  # Maximum number of posts analyzed per run
  max_posts: 200
  # Items requested per feed page
  page_size: 33
  timeout: 15s

rate_limit:
  requests_per_minute: 30

retry:
  enabled: true
  max_attempts: 3
  base_delay: 1s
  max_delay: 30s

gemini:
  model: gemini-2.5-flash
  timeout: 60s
  requests_per_minute: 10

logging:
  level: info
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = ".instalytics.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created %s\n", configPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// GeminiConfig.APIKey carries `yaml:"-"` so marshaling cannot leak it
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	fmt.Print(string(out))
	return nil
}
