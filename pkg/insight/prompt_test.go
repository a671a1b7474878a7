package insight

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instalytics/pkg/analytics"
)

func promptFixture() (*analytics.Profile, analytics.SummaryStats, analytics.TopContentRanking) {
	profile := &analytics.Profile{
		Username:  "testuser",
		Bio:       "Science communicator",
		Category:  "Science",
		Followers: 5000,
		Following: 100,
		PostCount: 42,
	}
	stats := analytics.SummaryStats{
		PostCount:      30,
		TotalLikes:     30000,
		TotalComments:  1500,
		AvgLikes:       1000,
		AvgComments:    50,
		EngagementRate: 21.0,
		Distribution: map[analytics.MediaType]int{
			analytics.MediaTypePhoto: 20,
			analytics.MediaTypeVideo: 10,
		},
	}
	ranking := analytics.TopContentRanking{
		Photos: []analytics.Post{
			{ID: "p1", Type: analytics.MediaTypePhoto, Likes: 2000, Comments: 100, Caption: "Launch day", TakenAt: time.Unix(1700000100, 0)},
		},
		Videos: []analytics.Post{
			{ID: "v1", Type: analytics.MediaTypeVideo, Likes: 3000, Comments: 200, Caption: "Rocket test", TakenAt: time.Unix(1700000200, 0)},
		},
	}
	return profile, stats, ranking
}

func TestBuildPrompt(t *testing.T) {
	profile, stats, ranking := promptFixture()
	prompt := BuildPrompt(profile, stats, ranking)

	assert.Contains(t, prompt, "@testuser")
	assert.Contains(t, prompt, "Followers: 5000")
	assert.Contains(t, prompt, "Average Likes per post: 1000")
	assert.Contains(t, prompt, "Engagement rate: 21.00%")
	assert.Contains(t, prompt, "photo posts: 20")

	// Section headings the parser keys on
	assert.Contains(t, prompt, "Overall Performance Summary")
	assert.Contains(t, prompt, "What's Working Well")
	assert.Contains(t, prompt, "Areas for Improvement")
	assert.Contains(t, prompt, "Actionable Recommendations")

	// Highest engagement post listed first
	assert.Less(t, strings.Index(prompt, "Rocket test"), strings.Index(prompt, "Launch day"))
}

func TestBuildPromptTruncatesCaptions(t *testing.T) {
	profile, stats, ranking := promptFixture()
	ranking.Photos[0].Caption = strings.Repeat("very long caption ", 50)

	prompt := BuildPrompt(profile, stats, ranking)

	assert.NotContains(t, prompt, ranking.Photos[0].Caption)
	assert.Contains(t, prompt, "...")
}

func TestBuildPromptEmptyRanking(t *testing.T) {
	profile, stats, _ := promptFixture()
	prompt := BuildPrompt(profile, stats, analytics.TopContentRanking{})

	assert.NotContains(t, prompt, "most engaging recent posts")
	assert.Contains(t, prompt, "@testuser")
}

func TestTopPosts(t *testing.T) {
	ranking := analytics.TopContentRanking{
		Photos: []analytics.Post{
			{ID: "p1", Likes: 100},
			{ID: "p2", Likes: 300},
		},
		Videos: []analytics.Post{
			{ID: "v1", Likes: 200},
			{ID: "v2", Likes: 400},
		},
	}

	top := topPosts(ranking, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "v2", top[0].ID)
	assert.Equal(t, "p2", top[1].ID)
	assert.Equal(t, "v1", top[2].ID)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "one two", truncate("one\n\ntwo", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("", 5))
}
