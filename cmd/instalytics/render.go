package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"instalytics/pkg/analytics"
	"instalytics/pkg/analyzer"
)

// jsonResult is the JSON shape of an analysis result. It is rebuilt from
// the domain types so the output format stays stable even when they change.
type jsonResult struct {
	Profile  jsonProfile `json:"profile"`
	Stats    jsonStats   `json:"stats"`
	Series   []jsonPoint `json:"engagement_series"`
	Top      jsonRanking `json:"top_content"`
	Report   *jsonReport `json:"insight_report,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
}

type jsonProfile struct {
	Username      string  `json:"username"`
	FullName      string  `json:"full_name,omitempty"`
	Category      string  `json:"category,omitempty"`
	IsPrivate     bool    `json:"is_private"`
	Followers     int     `json:"followers"`
	Following     int     `json:"following"`
	PostCount     int     `json:"post_count"`
	FollowerRatio float64 `json:"follower_ratio"`
}

type jsonStats struct {
	PostsAnalyzed  int            `json:"posts_analyzed"`
	TotalLikes     int            `json:"total_likes"`
	TotalComments  int            `json:"total_comments"`
	AvgLikes       float64        `json:"avg_likes"`
	AvgComments    float64        `json:"avg_comments"`
	EngagementRate float64        `json:"engagement_rate"`
	Distribution   map[string]int `json:"distribution"`
}

type jsonPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	Engagement int       `json:"engagement"`
}

type jsonRanking struct {
	Photos []jsonPost `json:"photos"`
	Videos []jsonPost `json:"videos"`
}

type jsonPost struct {
	URL        string    `json:"url,omitempty"`
	TakenAt    time.Time `json:"taken_at"`
	Likes      int       `json:"likes"`
	Comments   int       `json:"comments"`
	Engagement int       `json:"engagement"`
	Caption    string    `json:"caption,omitempty"`
}

type jsonReport struct {
	Summary         string   `json:"summary,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// renderJSON writes the result as indented JSON
func renderJSON(w io.Writer, result *analyzer.Result) error {
	out := jsonResult{
		Profile: jsonProfile{
			Username:      result.Profile.Username,
			FullName:      result.Profile.FullName,
			Category:      result.Profile.Category,
			IsPrivate:     result.Profile.IsPrivate,
			Followers:     result.Profile.Followers,
			Following:     result.Profile.Following,
			PostCount:     result.Profile.PostCount,
			FollowerRatio: result.Profile.FollowerRatio(),
		},
		Stats: jsonStats{
			PostsAnalyzed:  result.Stats.PostCount,
			TotalLikes:     result.Stats.TotalLikes,
			TotalComments:  result.Stats.TotalComments,
			AvgLikes:       result.Stats.AvgLikes,
			AvgComments:    result.Stats.AvgComments,
			EngagementRate: result.Stats.EngagementRate,
			Distribution:   make(map[string]int, len(result.Stats.Distribution)),
		},
		Top: jsonRanking{
			Photos: toJSONPosts(result.Ranking.Photos),
			Videos: toJSONPosts(result.Ranking.Videos),
		},
		Warnings: result.Warnings,
	}

	for mediaType, count := range result.Stats.Distribution {
		out.Stats.Distribution[string(mediaType)] = count
	}

	for _, point := range result.Series {
		out.Series = append(out.Series, jsonPoint{
			Timestamp:  point.Timestamp,
			Likes:      point.Likes,
			Comments:   point.Comments,
			Engagement: point.Engagement,
		})
	}

	if !result.Report.IsEmpty() {
		out.Report = &jsonReport{
			Summary:         result.Report.Summary,
			Strengths:       result.Report.Strengths,
			Weaknesses:      result.Report.Weaknesses,
			Recommendations: result.Report.Recommendations,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func toJSONPosts(posts []analytics.Post) []jsonPost {
	out := make([]jsonPost, 0, len(posts))
	for i := range posts {
		post := &posts[i]
		out = append(out, jsonPost{
			URL:        post.URL(),
			TakenAt:    post.TakenAt,
			Likes:      post.Likes,
			Comments:   post.Comments,
			Engagement: post.Engagement(),
			Caption:    post.Caption,
		})
	}
	return out
}

// renderText writes a human-readable report
func renderText(w io.Writer, result *analyzer.Result) error {
	profile := result.Profile

	fmt.Fprintf(w, "Profile: @%s", profile.Username)
	if profile.FullName != "" {
		fmt.Fprintf(w, " (%s)", profile.FullName)
	}
	fmt.Fprintln(w)
	if profile.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", profile.Category)
	}
	fmt.Fprintf(w, "Followers: %d | Following: %d | Posts: %d | Ratio: %.2f\n",
		profile.Followers, profile.Following, profile.PostCount, profile.FollowerRatio())

	stats := result.Stats
	fmt.Fprintf(w, "\nEngagement (%d posts analyzed)\n", stats.PostCount)
	fmt.Fprintf(w, "  Total likes:     %d\n", stats.TotalLikes)
	fmt.Fprintf(w, "  Total comments:  %d\n", stats.TotalComments)
	fmt.Fprintf(w, "  Avg likes:       %.1f\n", stats.AvgLikes)
	fmt.Fprintf(w, "  Avg comments:    %.1f\n", stats.AvgComments)
	if stats.EngagementRate > 0 {
		fmt.Fprintf(w, "  Engagement rate: %.2f%%\n", stats.EngagementRate)
	}
	for mediaType, count := range stats.Distribution {
		fmt.Fprintf(w, "  %-8s posts:  %d\n", mediaType, count)
	}

	printTop(w, "Top photos", result.Ranking.Photos)
	printTop(w, "Top videos", result.Ranking.Videos)

	if !result.Report.IsEmpty() {
		fmt.Fprintln(w, "\nAI Insight Report")
		if result.Report.Summary != "" {
			fmt.Fprintf(w, "  %s\n", result.Report.Summary)
		}
		printSection(w, "Working well", result.Report.Strengths)
		printSection(w, "Needs improvement", result.Report.Weaknesses)
		printSection(w, "Recommendations", result.Report.Recommendations)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "\nWarning: %s\n", warning)
	}

	return nil
}

func printTop(w io.Writer, title string, posts []analytics.Post) {
	if len(posts) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for i := range posts {
		post := &posts[i]
		fmt.Fprintf(w, "  %d. %d likes, %d comments", i+1, post.Likes, post.Comments)
		if url := post.URL(); url != "" {
			fmt.Fprintf(w, "  %s", url)
		}
		fmt.Fprintln(w)
	}
}

func printSection(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", item)
	}
}
