package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"instalytics/pkg/analyzer"
	"instalytics/pkg/config"
	"instalytics/pkg/insight"
	"instalytics/pkg/logger"
)

var (
	// Analyze command flags
	sessionCookie string
	maxPosts      int
	jsonOutput    bool
	noAI          bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <username>",
	Short: "Analyze an Instagram profile's engagement",
	Long: `Fetch a profile and its recent posts, compute engagement analytics, and
generate an AI insight report.

The session cookie is read from, in order:
  - the --session flag
  - the INSTALYTICS_SESSION environment variable
  - an interactive no-echo prompt

It accepts either a bare sessionid value or a full cookie string like
"sessionid=...; csrftoken=...". The cookie is used for this run only and
is never written to disk or logged.`,
	Example: `  # Analyze a profile, prompting for the session cookie
  instalytics analyze nasa

  # Pass the cookie via environment and print JSON
  INSTALYTICS_SESSION=... instalytics analyze nasa --json

  # Cap the number of posts analyzed
  instalytics analyze nasa --max-posts 50

  # Skip the AI report even when a Gemini key is configured
  instalytics analyze nasa --no-ai`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&sessionCookie, "session", "s", "", "Instagram session cookie (or INSTALYTICS_SESSION env var)")
	analyzeCmd.Flags().IntVar(&maxPosts, "max-posts", 0, "maximum number of posts to analyze (default from config)")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	analyzeCmd.Flags().BoolVar(&noAI, "no-ai", false, "skip the AI insight report")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger()

	credential, err := resolveCredential()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ai insight.Generator
	if !noAI && cfg.Gemini.APIKey != "" {
		gemini, err := insight.NewGeminiClient(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to create AI client: %w", err)
		}
		defer gemini.Close()
		ai = gemini
	}

	result, err := analyzer.New(cfg, ai, log).Run(ctx, analyzer.Request{
		Username:   username,
		Credential: credential,
		MaxPosts:   maxPosts,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return renderJSON(os.Stdout, result)
	}
	return renderText(os.Stdout, result)
}

// resolveCredential reads the session cookie from the flag, the
// environment, or an interactive no-echo prompt, in that order.
func resolveCredential() (string, error) {
	if sessionCookie != "" {
		return sessionCookie, nil
	}
	if env := os.Getenv("INSTALYTICS_SESSION"); env != "" {
		return env, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("no session cookie: use --session or INSTALYTICS_SESSION")
	}

	fmt.Fprint(os.Stderr, "Instagram session cookie (input hidden): ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read session cookie: %w", err)
	}

	credential := strings.TrimSpace(string(raw))
	if credential == "" {
		return "", fmt.Errorf("session cookie must not be empty")
	}
	return credential, nil
}
