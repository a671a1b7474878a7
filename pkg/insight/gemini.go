package insight

import (
	"context"
	"fmt"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"instalytics/pkg/config"
	errs "instalytics/pkg/errors"
	"instalytics/pkg/logger"
)

// Generator produces an AI analysis for a prompt. Implemented by
// GeminiClient; the orchestrator depends on this interface so the AI step
// can be replaced in tests.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Gemini API with a circuit breaker and a local
// requests-per-minute limiter in front of it. All failures surface as
// ErrorTypeAiService so the orchestrator can degrade instead of aborting.
type GeminiClient struct {
	client  *genai.Client
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	model   string
	timeout time.Duration
	logger  logger.Logger
}

var _ Generator = (*GeminiClient)(nil)

// NewGeminiClient creates a client from the configured model and API key.
// The key goes straight into the transport and is never logged.
func NewGeminiClient(ctx context.Context, cfg *config.Config, log logger.Logger) (*GeminiClient, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	if cfg.Gemini.APIKey == "" {
		return nil, errs.New(errs.ErrorTypeAiService, "Gemini API key is not configured", 0)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, errs.New(errs.ErrorTypeAiService, fmt.Sprintf("failed to create Gemini client: %v", err), 0)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WarnWithFields("AI circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	rpm := cfg.Gemini.RequestsPerMinute
	if rpm <= 0 {
		rpm = 10
	}

	return &GeminiClient{
		client:  client,
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		model:   cfg.Gemini.Model,
		timeout: cfg.Gemini.Timeout,
		logger:  log,
	}, nil
}

// Generate sends the prompt to the configured model and returns the
// response text. Every failure, including context cancellation while the
// call is in flight, comes back as an ErrorTypeAiService error.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", errs.New(errs.ErrorTypeAiService, fmt.Sprintf("AI rate limit wait aborted: %v", err), 0)
	}

	start := time.Now()
	g.logger.DebugWithFields("requesting AI analysis", map[string]interface{}{
		"model":         g.model,
		"prompt_length": len(prompt),
	})

	result, err := g.breaker.Execute(func() (interface{}, error) {
		model := g.client.GenerativeModel(g.model)
		model.SetTemperature(0.7)
		model.SetMaxOutputTokens(2048)
		return model.GenerateContent(ctx, genai.Text(prompt))
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			g.logger.Warn("AI circuit breaker open, skipping request")
			return "", errs.New(errs.ErrorTypeAiService, "AI service temporarily unavailable", 0)
		}
		g.logger.WithError(err).Error("AI request failed")
		return "", errs.New(errs.ErrorTypeAiService, fmt.Sprintf("AI request failed: %v", err), 0)
	}

	text := extractText(result.(*genai.GenerateContentResponse))
	if text == "" {
		return "", errs.New(errs.ErrorTypeAiService, "AI response contained no text", 0)
	}

	g.logger.InfoWithFields("AI analysis received", map[string]interface{}{
		"model":           g.model,
		"response_length": len(text),
		"duration":        time.Since(start),
	})

	return text, nil
}

// Close releases the underlying API client
func (g *GeminiClient) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractText concatenates the text parts of all candidates
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var text string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}
	return text
}
