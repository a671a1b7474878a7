package analytics

import (
	"fmt"
	"time"
)

// MediaType classifies a post's media
type MediaType string

const (
	MediaTypePhoto    MediaType = "photo"
	MediaTypeVideo    MediaType = "video"
	MediaTypeCarousel MediaType = "carousel"
)

// Profile holds the resolved profile metadata for one analysis run
type Profile struct {
	Username      string
	FullName      string
	Bio           string
	Category      string
	IsPrivate     bool
	Followers     int
	Following     int
	PostCount     int
	ProfilePicURL string
}

// FollowerRatio returns followers per followed account. A profile that
// follows nobody is treated as following one to keep the ratio finite.
func (p *Profile) FollowerRatio() float64 {
	following := p.Following
	if following < 1 {
		following = 1
	}
	return float64(p.Followers) / float64(following)
}

// Post is a normalized media item from the profile's feed
type Post struct {
	ID           string
	Shortcode    string
	Type         MediaType
	TakenAt      time.Time
	Likes        int
	Comments     int
	Caption      string
	ThumbnailURL string
}

// Engagement is the sum of likes and comments on the post
func (p *Post) Engagement() int {
	return p.Likes + p.Comments
}

// URL returns the public permalink for the post
func (p *Post) URL() string {
	if p.Shortcode == "" {
		return ""
	}
	return fmt.Sprintf("https://www.instagram.com/p/%s/", p.Shortcode)
}

// SeriesPoint is one sample of the engagement time series
type SeriesPoint struct {
	Timestamp  time.Time
	Likes      int
	Comments   int
	Engagement int
}

// EngagementSeries is the per-post engagement in chronological order.
// Timestamps are non-decreasing.
type EngagementSeries []SeriesPoint

// TopContentRanking holds the best-performing posts per media type,
// at most five entries each, engagement descending.
type TopContentRanking struct {
	Photos []Post
	Videos []Post
}

// SummaryStats holds derived engagement statistics for the fetched posts
type SummaryStats struct {
	PostCount      int
	TotalLikes     int
	TotalComments  int
	AvgLikes       float64
	AvgComments    float64
	EngagementRate float64
	Distribution   map[MediaType]int
}

// InsightReport is the parsed AI analysis. The upstream service gives no
// format guarantee, so any field other than Raw may be empty.
type InsightReport struct {
	Summary         string
	Strengths       []string
	Weaknesses      []string
	Recommendations []string
	Raw             string
}

// IsEmpty reports whether the report carries no content at all
func (r *InsightReport) IsEmpty() bool {
	return r.Summary == "" && len(r.Strengths) == 0 &&
		len(r.Weaknesses) == 0 && len(r.Recommendations) == 0 && r.Raw == ""
}

// Aggregation bundles everything Aggregate derives from one post collection
type Aggregation struct {
	Series  EngagementSeries
	Ranking TopContentRanking
	Stats   SummaryStats
}
