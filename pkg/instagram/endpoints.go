package instagram

import (
	"fmt"
	"net/url"
)

const (
	// BaseURL is the base URL for Instagram
	BaseURL = "https://www.instagram.com"

	// ProfileEndpoint is the endpoint pattern for user profiles
	ProfileEndpoint = "/api/v1/users/web_profile_info/"

	// FeedEndpoint is the endpoint pattern for a user's feed, keyed by user ID
	FeedEndpoint = "/api/v1/feed/user/%s/"
)

// GetProfileURL constructs the URL for fetching a user's profile
func GetProfileURL(username string) string {
	params := url.Values{}
	params.Set("username", username)

	return fmt.Sprintf("%s%s?%s", BaseURL, ProfileEndpoint, params.Encode())
}

// GetFeedURL constructs the URL for one page of a user's feed. maxID is the
// opaque cursor from the previous page, empty for the first page.
func GetFeedURL(userID, maxID string, count int) string {
	params := url.Values{}
	if count > 0 {
		params.Set("count", fmt.Sprintf("%d", count))
	}
	if maxID != "" {
		params.Set("max_id", maxID)
	}

	endpoint := fmt.Sprintf(BaseURL+FeedEndpoint, userID)
	if encoded := params.Encode(); encoded != "" {
		return endpoint + "?" + encoded
	}
	return endpoint
}

// IsValidUsername checks if a username is valid according to Instagram rules
func IsValidUsername(username string) bool {
	if username == "" || len(username) > 30 {
		return false
	}

	// Instagram usernames can only contain letters, numbers, periods, and underscores
	for _, char := range username {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '.' || char == '_') {
			return false
		}
	}

	return true
}

// SanitizeUsername removes any invalid characters from a username
func SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}

	// Remove @ symbol if present at the beginning
	if username[0] == '@' {
		username = username[1:]
	}

	// Remove any trailing slashes or spaces
	for len(username) > 0 && (username[len(username)-1] == '/' || username[len(username)-1] == ' ') {
		username = username[:len(username)-1]
	}

	return username
}
