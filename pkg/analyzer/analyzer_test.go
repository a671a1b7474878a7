package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instalytics/pkg/analytics"
	"instalytics/pkg/config"
	errs "instalytics/pkg/errors"
	"instalytics/pkg/logger"
)

type mockSource struct {
	profile     *analytics.Profile
	userID      string
	posts       []analytics.Post
	resolveErr  error
	streamErr   error
	gotMaxPosts int
}

func (m *mockSource) ResolveProfile(ctx context.Context, username string) (*analytics.Profile, string, error) {
	if m.resolveErr != nil {
		return nil, "", m.resolveErr
	}
	return m.profile, m.userID, nil
}

func (m *mockSource) StreamPosts(ctx context.Context, userID string, maxPosts int) ([]analytics.Post, error) {
	m.gotMaxPosts = maxPosts
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	return m.posts, nil
}

type mockGenerator struct {
	response  string
	err       error
	gotPrompt string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.gotPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func testPosts() []analytics.Post {
	return []analytics.Post{
		{ID: "p1", Type: analytics.MediaTypePhoto, TakenAt: time.Unix(1700000100, 0), Likes: 100, Comments: 10},
		{ID: "p2", Type: analytics.MediaTypeVideo, TakenAt: time.Unix(1700000200, 0), Likes: 200, Comments: 20},
	}
}

func newTestAnalyzer(source ProfileSource, ai *mockGenerator) *Analyzer {
	var a *Analyzer
	if ai != nil {
		a = New(config.DefaultConfig(), ai, logger.NewTestLogger())
	} else {
		a = New(config.DefaultConfig(), nil, logger.NewTestLogger())
	}
	a.newSource = func(credential string) (ProfileSource, error) {
		if credential == "" {
			return nil, errors.New("session credential must not be empty")
		}
		return source, nil
	}
	return a
}

func TestRunFullPipeline(t *testing.T) {
	source := &mockSource{
		profile: &analytics.Profile{Username: "testuser", Followers: 1000},
		userID:  "12345",
		posts:   testPosts(),
	}
	ai := &mockGenerator{response: `### Overall Performance Summary
Healthy account.

### Actionable Recommendations
- Post more reels
`}

	result, err := newTestAnalyzer(source, ai).Run(context.Background(), Request{
		Username:   "testuser",
		Credential: "sessionid=abc",
		MaxPosts:   50,
	})
	require.NoError(t, err)

	assert.Equal(t, "testuser", result.Profile.Username)
	assert.Len(t, result.Posts, 2)
	assert.Len(t, result.Series, 2)
	assert.Equal(t, 2, result.Stats.PostCount)
	assert.Equal(t, "Healthy account.", result.Report.Summary)
	assert.Equal(t, []string{"Post more reels"}, result.Report.Recommendations)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 50, source.gotMaxPosts)

	// Prompt carries the derived data, not the credential
	assert.Contains(t, ai.gotPrompt, "@testuser")
	assert.NotContains(t, ai.gotPrompt, "sessionid")
}

func TestRunAIFailureDegradesToPartialResult(t *testing.T) {
	source := &mockSource{
		profile: &analytics.Profile{Username: "testuser", Followers: 1000},
		userID:  "12345",
		posts:   testPosts(),
	}
	ai := &mockGenerator{err: errs.New(errs.ErrorTypeAiService, "model overloaded", 0)}

	result, err := newTestAnalyzer(source, ai).Run(context.Background(), Request{
		Username:   "testuser",
		Credential: "sessionid=abc",
	})
	require.NoError(t, err, "an AI failure must not fail the run")

	assert.True(t, result.Report.IsEmpty())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "AI analysis unavailable")

	// The analytics stages still delivered
	assert.Equal(t, 2, result.Stats.PostCount)
	assert.Len(t, result.Series, 2)
}

func TestRunWithoutAI(t *testing.T) {
	source := &mockSource{
		profile: &analytics.Profile{Username: "testuser"},
		userID:  "12345",
		posts:   testPosts(),
	}

	result, err := newTestAnalyzer(source, nil).Run(context.Background(), Request{
		Username:   "testuser",
		Credential: "sessionid=abc",
	})
	require.NoError(t, err)

	assert.True(t, result.Report.IsEmpty())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "AI analysis disabled")
}

func TestRunResolveFailureIsTerminal(t *testing.T) {
	source := &mockSource{
		resolveErr: errs.New(errs.ErrorTypeAuthExpired, "session cookie is no longer valid", 401),
	}

	result, err := newTestAnalyzer(source, &mockGenerator{}).Run(context.Background(), Request{
		Username:   "testuser",
		Credential: "sessionid=stale",
	})
	require.Error(t, err)
	assert.Nil(t, result)

	var analysisErr *errs.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, errs.StageProfile, analysisErr.Stage)
	assert.True(t, errs.IsType(err, errs.ErrorTypeAuthExpired), "cause must stay reachable through the wrapper")
}

func TestRunStreamFailureIsTerminal(t *testing.T) {
	source := &mockSource{
		profile:   &analytics.Profile{Username: "testuser"},
		userID:    "12345",
		streamErr: errs.New(errs.ErrorTypeForbidden, "target exists but is not visible to this account", 403),
	}

	_, err := newTestAnalyzer(source, &mockGenerator{}).Run(context.Background(), Request{
		Username:   "testuser",
		Credential: "sessionid=abc",
	})
	require.Error(t, err)

	var analysisErr *errs.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, errs.StagePosts, analysisErr.Stage)
}

func TestRunEmptyCredential(t *testing.T) {
	_, err := newTestAnalyzer(&mockSource{}, nil).Run(context.Background(), Request{
		Username: "testuser",
	})
	require.Error(t, err)

	var analysisErr *errs.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, errs.StageProfile, analysisErr.Stage)
}

func TestRunCancelledDuringAIStillReturnsResult(t *testing.T) {
	source := &mockSource{
		profile: &analytics.Profile{Username: "testuser"},
		userID:  "12345",
		posts:   testPosts(),
	}
	ai := &mockGenerator{err: errs.New(errs.ErrorTypeAiService, "AI rate limit wait aborted: context canceled", 0)}

	result, err := newTestAnalyzer(source, ai).Run(context.Background(), Request{
		Username:   "testuser",
		Credential: "sessionid=abc",
	})
	require.NoError(t, err)
	assert.True(t, result.Report.IsEmpty())
	assert.NotEmpty(t, result.Warnings)
}
