package instagram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"instalytics/pkg/analytics"
	"instalytics/pkg/config"
	errs "instalytics/pkg/errors"
	"instalytics/pkg/logger"
	"instalytics/pkg/retry"
)

// Fetcher resolves profiles and streams their posts from the source API.
// It normalizes the feed's heterogeneous media records into analytics.Post
// values and retries transient failures with bounded backoff; all other
// error kinds pass through to the caller unchanged.
type Fetcher struct {
	client *Client
	cfg    *config.Config
	logger logger.Logger
}

// NewFetcher creates a fetcher on top of an authenticated client
func NewFetcher(client *Client, cfg *config.Config, log logger.Logger) *Fetcher {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Fetcher{
		client: client,
		cfg:    cfg,
		logger: log,
	}
}

// retryConfig builds the per-call retry configuration. Retrying is limited
// to transient network and rate-limit errors by DefaultRetryIf.
func (f *Fetcher) retryConfig(ctx context.Context) *retry.Config {
	maxAttempts := 1
	if f.cfg.Retry.Enabled {
		maxAttempts = f.cfg.Retry.MaxAttempts
	}
	return &retry.Config{
		MaxAttempts: maxAttempts,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:    f.cfg.Retry.BaseDelay,
			MaxDelay:     f.cfg.Retry.MaxDelay,
			Multiplier:   2.0,
			JitterFactor: 0.1,
		},
		RetryIf: retry.DefaultRetryIf,
		Context: ctx,
		Logger:  f.logger,
	}
}

// ResolveProfile resolves a username to profile metadata and the numeric
// user ID the feed endpoint is keyed by.
func (f *Fetcher) ResolveProfile(ctx context.Context, username string) (*analytics.Profile, string, error) {
	username = SanitizeUsername(username)
	if !IsValidUsername(username) {
		return nil, "", errs.New(errs.ErrorTypeNotFound, fmt.Sprintf("invalid username %q", username), 0)
	}

	f.logger.DebugWithFields("resolving profile", map[string]interface{}{
		"username": username,
	})

	response, err := retry.DoWithResult(func() (*webProfileResponse, error) {
		var resp webProfileResponse
		if err := f.client.GetJSON(ctx, GetProfileURL(username), &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}, f.retryConfig(ctx))
	if err != nil {
		f.logger.WithError(err).WithField("username", username).Error("failed to resolve profile")
		return nil, "", err
	}

	if response.RequiresToLogin {
		f.logger.WarnWithFields("profile requires authentication", map[string]interface{}{
			"username": username,
		})
		return nil, "", errs.New(errs.ErrorTypeAuthExpired, "Instagram requires authentication to view this profile", http.StatusUnauthorized)
	}

	user := response.Data.User
	if user.ID == "" {
		return nil, "", errs.New(errs.ErrorTypeMalformed, "profile payload missing user id", 0)
	}

	profile := &analytics.Profile{
		Username:      user.Username,
		FullName:      user.FullName,
		Bio:           user.Biography,
		Category:      user.CategoryName,
		IsPrivate:     user.IsPrivate,
		Followers:     user.EdgeFollowedBy.Count,
		Following:     user.EdgeFollow.Count,
		PostCount:     user.EdgeTimeline.Count,
		ProfilePicURL: user.ProfilePicURLHD,
	}
	if profile.Username == "" {
		profile.Username = username
	}

	f.logger.InfoWithFields("profile resolved", map[string]interface{}{
		"username":  profile.Username,
		"followers": profile.Followers,
		"posts":     profile.PostCount,
	})

	return profile, user.ID, nil
}

// maxStalePages bounds how many consecutive pages may contribute no new
// posts before the stream gives up. Guards against an upstream that keeps
// advancing the cursor while every item is malformed or a duplicate.
const maxStalePages = 3

// StreamPosts fetches the user's feed page by page until the upstream
// reports no further cursor or maxPosts is reached. maxPosts <= 0 falls
// back to the configured bound. Individual malformed items are skipped;
// only an undecodable page fails the stream.
func (f *Fetcher) StreamPosts(ctx context.Context, userID string, maxPosts int) ([]analytics.Post, error) {
	if maxPosts <= 0 || maxPosts > f.cfg.Fetch.MaxPosts {
		maxPosts = f.cfg.Fetch.MaxPosts
	}

	posts := make([]analytics.Post, 0, maxPosts)
	seen := make(map[string]struct{}, maxPosts)
	maxID := ""
	pageNum := 0
	skipped := 0
	stalePages := 0

	for {
		pageNum++
		f.logger.DebugWithFields("fetching feed page", map[string]interface{}{
			"user_id": userID,
			"page":    pageNum,
			"cursor":  maxID,
		})

		page, err := retry.DoWithResult(func() (*feedResponse, error) {
			var resp feedResponse
			if err := f.client.GetJSON(ctx, GetFeedURL(userID, maxID, f.cfg.Fetch.PageSize), &resp); err != nil {
				return nil, err
			}
			return &resp, nil
		}, f.retryConfig(ctx))
		if err != nil {
			f.logger.WithError(err).WithFields(map[string]interface{}{
				"user_id": userID,
				"page":    pageNum,
			}).Error("failed to fetch feed page")
			return nil, err
		}

		added := 0
		for i := range page.Items {
			post, ok := f.normalizeItem(&page.Items[i])
			if !ok {
				skipped++
				continue
			}
			if _, dup := seen[post.ID]; dup {
				continue
			}
			seen[post.ID] = struct{}{}
			posts = append(posts, post)
			added++

			if len(posts) >= maxPosts {
				f.logger.InfoWithFields("post stream complete", map[string]interface{}{
					"user_id": userID,
					"posts":   len(posts),
					"skipped": skipped,
					"reason":  "max posts reached",
				})
				return posts, nil
			}
		}

		if added == 0 {
			stalePages++
			if stalePages >= maxStalePages {
				f.logger.WarnWithFields("stopping feed stream, pages yield no new posts", map[string]interface{}{
					"user_id":     userID,
					"stale_pages": stalePages,
					"skipped":     skipped,
				})
				break
			}
		} else {
			stalePages = 0
		}

		if !page.MoreAvailable || page.NextMaxID == "" {
			break
		}
		maxID = page.NextMaxID
	}

	f.logger.InfoWithFields("post stream complete", map[string]interface{}{
		"user_id": userID,
		"posts":   len(posts),
		"skipped": skipped,
		"reason":  "no more pages",
	})

	return posts, nil
}

// normalizeItem converts one raw feed record into a Post. Media id and
// timestamp are required; everything else degrades to a zero value.
func (f *Fetcher) normalizeItem(item *feedItem) (analytics.Post, bool) {
	id := item.ID
	if id == "" && item.PK != 0 {
		id = fmt.Sprintf("%d", item.PK)
	}
	if id == "" || item.TakenAt <= 0 {
		f.logger.DebugWithFields("skipping malformed feed item", map[string]interface{}{
			"id":       item.ID,
			"taken_at": item.TakenAt,
		})
		return analytics.Post{}, false
	}

	post := analytics.Post{
		ID:        id,
		Shortcode: item.Code,
		Type:      f.mediaTypeOf(item),
		TakenAt:   time.Unix(item.TakenAt, 0).UTC(),
		Likes:     item.LikeCount,
		Comments:  item.CommentCount,
	}

	// Hidden like counts come back as -1
	if post.Likes < 0 {
		post.Likes = 0
	}
	if post.Comments < 0 {
		post.Comments = 0
	}

	if item.Caption != nil {
		post.Caption = item.Caption.Text
	}
	if item.ImageVersions != nil && len(item.ImageVersions.Candidates) > 0 {
		post.ThumbnailURL = item.ImageVersions.Candidates[0].URL
	}

	return post, true
}

func (f *Fetcher) mediaTypeOf(item *feedItem) analytics.MediaType {
	switch item.MediaType {
	case mediaTypeCodePhoto:
		return analytics.MediaTypePhoto
	case mediaTypeCodeVideo:
		return analytics.MediaTypeVideo
	case mediaTypeCodeCarousel:
		return analytics.MediaTypeCarousel
	default:
		f.logger.WarnWithFields("unknown media type, defaulting to photo", map[string]interface{}{
			"media_type": item.MediaType,
			"id":         item.ID,
		})
		return analytics.MediaTypePhoto
	}
}
