package instagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetProfileURL(t *testing.T) {
	url := GetProfileURL("testuser")
	assert.Equal(t, "https://www.instagram.com/api/v1/users/web_profile_info/?username=testuser", url)
}

func TestGetFeedURL(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		maxID  string
		count  int
		want   string
	}{
		{
			name:   "first page",
			userID: "12345",
			count:  33,
			want:   "https://www.instagram.com/api/v1/feed/user/12345/?count=33",
		},
		{
			name:   "with cursor",
			userID: "12345",
			maxID:  "abc_123",
			count:  33,
			want:   "https://www.instagram.com/api/v1/feed/user/12345/?count=33&max_id=abc_123",
		},
		{
			name:   "no params",
			userID: "12345",
			want:   "https://www.instagram.com/api/v1/feed/user/12345/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetFeedURL(tt.userID, tt.maxID, tt.count))
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"testuser", "test.user", "test_user", "user123", "a"}
	for _, username := range valid {
		assert.True(t, IsValidUsername(username), "expected %q to be valid", username)
	}

	invalid := []string{"", "user name", "user@name", "user/name", "ThisUsernameIsWayTooLongForInstagram1234"}
	for _, username := range invalid {
		assert.False(t, IsValidUsername(username), "expected %q to be invalid", username)
	}
}

func TestSanitizeUsername(t *testing.T) {
	assert.Equal(t, "testuser", SanitizeUsername("@testuser"))
	assert.Equal(t, "testuser", SanitizeUsername("testuser/"))
	assert.Equal(t, "testuser", SanitizeUsername("testuser "))
	assert.Equal(t, "testuser", SanitizeUsername("@testuser/ "))
	assert.Equal(t, "", SanitizeUsername(""))
}
