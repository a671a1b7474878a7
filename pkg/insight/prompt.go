package insight

import (
	"fmt"
	"sort"
	"strings"

	"instalytics/pkg/analytics"
)

const (
	// maxCaptionLength bounds how much of a caption goes into the prompt
	maxCaptionLength = 80

	// topPostsInPrompt is how many top posts the prompt digests
	topPostsInPrompt = 3
)

// BuildPrompt renders the analysis request for the AI model. Only derived
// numbers and public post metadata go in; the session credential and API
// key are never part of the prompt.
func BuildPrompt(profile *analytics.Profile, stats analytics.SummaryStats, ranking analytics.TopContentRanking) string {
	var b strings.Builder

	fmt.Fprintf(&b, "As an expert Instagram marketing strategist, analyze the following data for the user '%s' and provide actionable recommendations. The user's goal is to grow their account and increase engagement.\n\n", profile.Username)

	b.WriteString("Profile Data:\n")
	fmt.Fprintf(&b, "Username: @%s, Followers: %d, Following: %d, Posts: %d, Bio: '%s'\n",
		profile.Username, profile.Followers, profile.Following, profile.PostCount,
		truncate(profile.Bio, maxCaptionLength))
	if profile.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", profile.Category)
	}

	b.WriteString("\nRecent Post Performance Summary:\n")
	fmt.Fprintf(&b, "- Posts analyzed: %d\n", stats.PostCount)
	fmt.Fprintf(&b, "- Average Likes per post: %.0f\n", stats.AvgLikes)
	fmt.Fprintf(&b, "- Average Comments per post: %.0f\n", stats.AvgComments)
	if stats.EngagementRate > 0 {
		fmt.Fprintf(&b, "- Engagement rate: %.2f%%\n", stats.EngagementRate)
	}
	for _, mediaType := range []analytics.MediaType{analytics.MediaTypePhoto, analytics.MediaTypeVideo, analytics.MediaTypeCarousel} {
		if count := stats.Distribution[mediaType]; count > 0 {
			fmt.Fprintf(&b, "- %s posts: %d\n", mediaType, count)
		}
	}

	if top := topPosts(ranking, topPostsInPrompt); len(top) > 0 {
		fmt.Fprintf(&b, "- Their top %d most engaging recent posts are:\n", len(top))
		for _, post := range top {
			fmt.Fprintf(&b, "  - [%s] %d likes, %d comments", post.Type, post.Likes, post.Comments)
			if caption := truncate(post.Caption, maxCaptionLength); caption != "" {
				fmt.Fprintf(&b, ": %q", caption)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(`
Your Task:
Based on all the data provided, generate a concise and encouraging report in Markdown format. Address the following sections:

### Overall Performance Summary
A brief, 2-3 sentence paragraph summarizing the account's current state and health.

### What's Working Well
3-4 bullet points identifying successful patterns based on their top posts and stats. What content themes or formats are resonating with their audience?

### Areas for Improvement
3-4 bullet points on potential weaknesses or missed opportunities. Are certain post types underperforming? Is their bio optimized?

### Actionable Recommendations
A numbered list of 5 concrete, creative, and strategic steps the user can take in the next 2 weeks to improve their account. Make these specific to the user's data.

### Content Ideas
3 fresh and specific content ideas that expand on what's already working for them.
`)

	return b.String()
}

// topPosts merges the photo and video rankings into one engagement-ordered
// digest of at most n posts
func topPosts(ranking analytics.TopContentRanking, n int) []analytics.Post {
	merged := make([]analytics.Post, 0, len(ranking.Photos)+len(ranking.Videos))
	merged = append(merged, ranking.Photos...)
	merged = append(merged, ranking.Videos...)

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Engagement() != merged[j].Engagement() {
			return merged[i].Engagement() > merged[j].Engagement()
		}
		return merged[i].TakenAt.After(merged[j].TakenAt)
	})

	if len(merged) > n {
		merged = merged[:n]
	}
	return merged
}

// truncate flattens newlines and cuts s to at most n runes
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
