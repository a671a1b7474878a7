package instagram

// Raw payload shapes for the two endpoints this engine touches. The
// upstream schema is undocumented and drifts; every field here is
// optional at the JSON level and normalization decides what is required.

// webProfileResponse is the envelope of the web_profile_info endpoint
type webProfileResponse struct {
	RequiresToLogin bool           `json:"requires_to_login"`
	Data            webProfileData `json:"data"`
	Status          string         `json:"status"`
	Message         string         `json:"message"`
}

type webProfileData struct {
	User webProfileUser `json:"user"`
}

type webProfileUser struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"full_name"`
	Biography       string    `json:"biography"`
	CategoryName    string    `json:"category_name"`
	IsPrivate       bool      `json:"is_private"`
	ProfilePicURLHD string    `json:"profile_pic_url_hd"`
	EdgeFollowedBy  edgeCount `json:"edge_followed_by"`
	EdgeFollow      edgeCount `json:"edge_follow"`
	EdgeTimeline    edgeCount `json:"edge_owner_to_timeline_media"`
}

type edgeCount struct {
	Count int `json:"count"`
}

// feedResponse is one page of the user feed endpoint
type feedResponse struct {
	Items         []feedItem `json:"items"`
	NumResults    int        `json:"num_results"`
	MoreAvailable bool       `json:"more_available"`
	NextMaxID     string     `json:"next_max_id"`
	Status        string     `json:"status"`
}

// feedItem is a single media record in the feed. Counts may be absent or
// hidden; both decode to values normalization clamps to zero.
type feedItem struct {
	ID            string         `json:"id"`
	PK            int64          `json:"pk"`
	Code          string         `json:"code"`
	TakenAt       int64          `json:"taken_at"`
	MediaType     int            `json:"media_type"`
	LikeCount     int            `json:"like_count"`
	CommentCount  int            `json:"comment_count"`
	Caption       *captionNode   `json:"caption"`
	ImageVersions *imageVersions `json:"image_versions2"`
}

type captionNode struct {
	Text string `json:"text"`
}

type imageVersions struct {
	Candidates []imageCandidate `json:"candidates"`
}

type imageCandidate struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Media type codes used by the feed endpoint
const (
	mediaTypeCodePhoto    = 1
	mediaTypeCodeVideo    = 2
	mediaTypeCodeCarousel = 8
)
