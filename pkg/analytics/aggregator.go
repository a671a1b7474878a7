package analytics

import (
	"sort"
)

const topRankingSize = 5

// Aggregate derives the engagement series, top-content rankings and summary
// statistics from a fetched post collection. It is a pure function: no I/O,
// deterministic for a given input ordering, and the input slice is never
// mutated. An empty collection yields zeroed stats and empty series/rankings.
func Aggregate(profile *Profile, posts []Post) Aggregation {
	return Aggregation{
		Series:  buildSeries(posts),
		Ranking: buildRanking(posts),
		Stats:   buildStats(profile, posts),
	}
}

// buildSeries produces one point per post in chronological order. The feed
// delivers posts newest-first, so the series has to re-sort ascending.
func buildSeries(posts []Post) EngagementSeries {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TakenAt.Before(sorted[j].TakenAt)
	})

	series := make(EngagementSeries, 0, len(sorted))
	for i := range sorted {
		series = append(series, SeriesPoint{
			Timestamp:  sorted[i].TakenAt,
			Likes:      sorted[i].Likes,
			Comments:   sorted[i].Comments,
			Engagement: sorted[i].Engagement(),
		})
	}
	return series
}

func buildRanking(posts []Post) TopContentRanking {
	var photos, videos []Post
	for _, p := range posts {
		switch p.Type {
		case MediaTypePhoto:
			photos = append(photos, p)
		case MediaTypeVideo:
			videos = append(videos, p)
		}
	}

	return TopContentRanking{
		Photos: topN(photos, topRankingSize),
		Videos: topN(videos, topRankingSize),
	}
}

// topN returns the n posts with the highest engagement, ties broken by the
// more recent post first.
func topN(posts []Post, n int) []Post {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		ei, ej := sorted[i].Engagement(), sorted[j].Engagement()
		if ei != ej {
			return ei > ej
		}
		return sorted[i].TakenAt.After(sorted[j].TakenAt)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func buildStats(profile *Profile, posts []Post) SummaryStats {
	stats := SummaryStats{
		PostCount:    len(posts),
		Distribution: make(map[MediaType]int),
	}

	for _, p := range posts {
		stats.TotalLikes += p.Likes
		stats.TotalComments += p.Comments
		stats.Distribution[p.Type]++
	}

	if len(posts) > 0 {
		stats.AvgLikes = float64(stats.TotalLikes) / float64(len(posts))
		stats.AvgComments = float64(stats.TotalComments) / float64(len(posts))
	}

	if profile != nil && profile.Followers > 0 && len(posts) > 0 {
		stats.EngagementRate = (stats.AvgLikes + stats.AvgComments) / float64(profile.Followers) * 100
	}

	return stats
}
