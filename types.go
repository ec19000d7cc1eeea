package releases

import "time"

// RepoInfo identifies a repository by owner and name.
type RepoInfo struct {
	// Owner is the user or organization that owns the repository.
	Owner string

	// Name is the repository name without the owner.
	Name string
}

// String returns "owner/name".
func (r RepoInfo) String() string {
	return r.Owner + "/" + r.Name
}

// Release contains release information from the Releases API.
type Release struct {
	// Identification
	ID     int64  `json:"id"`
	NodeID string `json:"node_id"`

	// Content
	TagName         string  `json:"tag_name"`
	TargetCommitish string  `json:"target_commitish"`
	Name            *string `json:"name"`
	Body            *string `json:"body"`
	Draft           bool    `json:"draft"`
	Prerelease      bool    `json:"prerelease"`

	// Relations
	Author User     `json:"author"`
	Assets []*Asset `json:"assets"`

	// URLs
	URL           string  `json:"url"`
	HTMLURL       string  `json:"html_url"`
	AssetsURL     string  `json:"assets_url"`
	UploadURL     string  `json:"upload_url"`
	TarballURL    *string `json:"tarball_url"`
	ZipballURL    *string `json:"zipball_url"`
	DiscussionURL *string `json:"discussion_url"`

	// Timestamps
	CreatedAt   string  `json:"created_at"`
	PublishedAt *string `json:"published_at"`
}

// CreatedTime parses CreatedAt.
func (r *Release) CreatedTime() (time.Time, error) {
	return ParseGitHubTime(r.CreatedAt)
}

// PublishedTime parses PublishedAt. Drafts have no publish time and return
// the zero time without error.
func (r *Release) PublishedTime() (time.Time, error) {
	if r.PublishedAt == nil {
		return time.Time{}, nil
	}
	return ParseGitHubTime(*r.PublishedAt)
}

// Asset contains release asset information.
type Asset struct {
	// Identification
	ID     int64  `json:"id"`
	NodeID string `json:"node_id"`

	// Content
	Name          string  `json:"name"`
	Label         *string `json:"label"`
	State         string  `json:"state"`
	ContentType   string  `json:"content_type"`
	Size          int64   `json:"size"`
	DownloadCount int64   `json:"download_count"`

	Uploader User `json:"uploader"`

	// URLs
	URL                string `json:"url"`
	BrowserDownloadURL string `json:"browser_download_url"`

	// Timestamps
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreatedTime parses CreatedAt.
func (a *Asset) CreatedTime() (time.Time, error) {
	return ParseGitHubTime(a.CreatedAt)
}

// UpdatedTime parses UpdatedAt.
func (a *Asset) UpdatedTime() (time.Time, error) {
	return ParseGitHubTime(a.UpdatedAt)
}

// TagInfo is the payload for creating an annotated tag object.
type TagInfo struct {
	// Tag is the tag name, e.g. "v1.0.0"
	Tag string `json:"tag"`

	// Message is the tag message
	Message string `json:"message"`

	// Object is the SHA of the tagged object
	Object string `json:"object"`

	// Type is the type of the tagged object, usually "commit"
	Type string `json:"type"`
}

// Tag is an annotated tag object as returned by the API.
type Tag struct {
	NodeID  string `json:"node_id"`
	Tag     string `json:"tag"`
	SHA     string `json:"sha"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// User is the author of a release or the uploader of an asset.
// Name and Email are only populated for release authors.
type User struct {
	Login      string  `json:"login"`
	ID         int64   `json:"id"`
	NodeID     string  `json:"node_id"`
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	AvatarURL  string  `json:"avatar_url"`
	GravatarID *string `json:"gravatar_id"`
	Type       string  `json:"type"`
	SiteAdmin  bool    `json:"site_admin"`

	URL               string `json:"url"`
	HTMLURL           string `json:"html_url"`
	FollowersURL      string `json:"followers_url"`
	FollowingURL      string `json:"following_url"`
	GistsURL          string `json:"gists_url"`
	StarredURL        string `json:"starred_url"`
	SubscriptionsURL  string `json:"subscriptions_url"`
	OrganizationsURL  string `json:"organizations_url"`
	ReposURL          string `json:"repos_url"`
	EventsURL         string `json:"events_url"`
	ReceivedEventsURL string `json:"received_events_url"`
}

// Asset states.
const (
	// AssetStateUploaded indicates the asset upload completed.
	AssetStateUploaded = "uploaded"

	// AssetStateOpen indicates the asset upload has not completed.
	AssetStateOpen = "open"
)

// Values for CreateReleaseOptions.MakeLatest.
const (
	MakeLatestTrue   = "true"
	MakeLatestFalse  = "false"
	MakeLatestLegacy = "legacy"
)

// Pagination defaults applied when a list option is omitted.
const (
	DefaultPerPage = 30
	DefaultPage    = 1
)

// ListOptions contains pagination options for list operations.
type ListOptions struct {
	// PerPage is the number of items per page
	PerPage int `url:"per_page"`

	// Page is the page number (1-indexed)
	Page int `url:"page"`
}

// CreateReleaseOptions contains options for creating a release.
type CreateReleaseOptions struct {
	// TagName is the tag to create the release from (required)
	TagName string `json:"tag_name"`

	TargetCommitish        *string `json:"target_commitish,omitempty"`
	Name                   *string `json:"name,omitempty"`
	Body                   *string `json:"body,omitempty"`
	Draft                  *bool   `json:"draft,omitempty"`
	Prerelease             *bool   `json:"prerelease,omitempty"`
	DiscussionCategoryName *string `json:"discussion_category_name,omitempty"`
	GenerateReleaseNotes   *bool   `json:"generate_release_notes,omitempty"`

	// MakeLatest is one of MakeLatestTrue, MakeLatestFalse or MakeLatestLegacy
	MakeLatest *string `json:"make_latest,omitempty"`
}

// UpdateReleaseOptions contains options for updating a release.
// Only non-nil fields are sent.
type UpdateReleaseOptions struct {
	TagName                *string `json:"tag_name,omitempty"`
	TargetCommitish        *string `json:"target_commitish,omitempty"`
	Name                   *string `json:"name,omitempty"`
	Body                   *string `json:"body,omitempty"`
	Draft                  *bool   `json:"draft,omitempty"`
	Prerelease             *bool   `json:"prerelease,omitempty"`
	DiscussionCategoryName *string `json:"discussion_category_name,omitempty"`
	MakeLatest             *string `json:"make_latest,omitempty"`
}

// UpdateAssetOptions contains options for updating a release asset.
// Only non-nil fields are sent.
type UpdateAssetOptions struct {
	// Name is the new file name of the asset
	Name *string `json:"name,omitempty"`

	// Label is the new display label of the asset
	Label *string `json:"label,omitempty"`

	// State is the new asset state
	State *string `json:"state,omitempty"`
}

// UploadAssetOptions contains the query parameters of an asset upload.
type UploadAssetOptions struct {
	// Name is the file name of the asset (required)
	Name string `url:"name"`

	// Label is an optional display label
	Label string `url:"label,omitempty"`
}
