package analyzer

import (
	"context"
	"fmt"

	"instalytics/pkg/analytics"
	"instalytics/pkg/config"
	errs "instalytics/pkg/errors"
	"instalytics/pkg/insight"
	"instalytics/pkg/instagram"
	"instalytics/pkg/logger"
)

// Request describes one analysis run. Credential is the caller's session
// cookie; it lives only for the duration of Run and is never stored or
// logged.
type Request struct {
	Username   string
	Credential string
	MaxPosts   int
}

// Result is everything one analysis run produced. Report may be empty
// when the AI step was skipped or failed; Warnings says why.
type Result struct {
	Profile  *analytics.Profile
	Posts    []analytics.Post
	Series   analytics.EngagementSeries
	Ranking  analytics.TopContentRanking
	Stats    analytics.SummaryStats
	Report   analytics.InsightReport
	Warnings []string
}

// ProfileSource is the fetch layer the orchestrator drives
type ProfileSource interface {
	ResolveProfile(ctx context.Context, username string) (*analytics.Profile, string, error)
	StreamPosts(ctx context.Context, userID string, maxPosts int) ([]analytics.Post, error)
}

// Analyzer runs the fetch, aggregate and AI stages of one analysis.
// Fetch and aggregation failures abort the run with an AnalysisError;
// an AI failure only degrades the result to an empty report plus a
// warning, because the fetched analytics are still worth returning.
type Analyzer struct {
	cfg       *config.Config
	ai        insight.Generator
	logger    logger.Logger
	newSource func(credential string) (ProfileSource, error)
}

// New creates an analyzer. ai may be nil, which disables the AI stage
// and records a warning on every result.
func New(cfg *config.Config, ai insight.Generator, log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.GetLogger()
	}
	a := &Analyzer{
		cfg:    cfg,
		ai:     ai,
		logger: log,
	}
	a.newSource = func(credential string) (ProfileSource, error) {
		client, err := instagram.NewClient(cfg, credential, log)
		if err != nil {
			return nil, err
		}
		return instagram.NewFetcher(client, cfg, log), nil
	}
	return a
}

// Run executes one full analysis for the requested username
func (a *Analyzer) Run(ctx context.Context, req Request) (*Result, error) {
	a.logger.InfoWithFields("starting analysis", map[string]interface{}{
		"username":  req.Username,
		"max_posts": req.MaxPosts,
	})

	source, err := a.newSource(req.Credential)
	if err != nil {
		return nil, errs.NewAnalysisError(errs.StageProfile, err)
	}

	profile, userID, err := source.ResolveProfile(ctx, req.Username)
	if err != nil {
		return nil, errs.NewAnalysisError(errs.StageProfile, err)
	}

	posts, err := source.StreamPosts(ctx, userID, req.MaxPosts)
	if err != nil {
		return nil, errs.NewAnalysisError(errs.StagePosts, err)
	}

	aggregation := analytics.Aggregate(profile, posts)

	result := &Result{
		Profile: profile,
		Posts:   posts,
		Series:  aggregation.Series,
		Ranking: aggregation.Ranking,
		Stats:   aggregation.Stats,
	}

	a.runInsightStage(ctx, result)

	a.logger.InfoWithFields("analysis complete", map[string]interface{}{
		"username": profile.Username,
		"posts":    len(posts),
		"warnings": len(result.Warnings),
	})

	return result, nil
}

// runInsightStage fills in result.Report. Failures here never fail the
// run; the result degrades to an empty report with a warning.
func (a *Analyzer) runInsightStage(ctx context.Context, result *Result) {
	if a.ai == nil {
		result.Warnings = append(result.Warnings, "AI analysis disabled: no API key configured")
		return
	}

	prompt := insight.BuildPrompt(result.Profile, result.Stats, result.Ranking)

	text, err := a.ai.Generate(ctx, prompt)
	if err != nil {
		a.logger.WithError(err).WithField("username", result.Profile.Username).
			Warn("AI analysis failed, returning partial result")
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("AI analysis unavailable: %v", err))
		return
	}

	result.Report = insight.ParseReport(text)
}
