package releases

import "fmt"

const (
	// DefaultBaseURL is the API host used for release and asset metadata.
	DefaultBaseURL = "https://api.github.com"

	// DefaultUploadURL is the host that accepts asset uploads.
	DefaultUploadURL = "https://uploads.github.com"
)

// endpoints builds request URLs for each resource action.
// Identifiers are substituted verbatim; nothing is escaped or validated here.
type endpoints struct {
	api    string
	upload string
}

func defaultEndpoints() endpoints {
	return endpoints{api: DefaultBaseURL, upload: DefaultUploadURL}
}

// releasesURL is the release collection. Creating a release posts here.
func (e endpoints) releasesURL(repo RepoInfo) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases", e.api, repo.Owner, repo.Name)
}

func (e endpoints) releaseURL(repo RepoInfo, releaseID int64) string {
	return fmt.Sprintf("%s/%d", e.releasesURL(repo), releaseID)
}

func (e endpoints) assetURL(repo RepoInfo, assetID int64) string {
	return fmt.Sprintf("%s/assets/%d", e.releasesURL(repo), assetID)
}

func (e endpoints) releaseAssetsURL(repo RepoInfo, releaseID int64) string {
	return fmt.Sprintf("%s/%d/assets", e.releasesURL(repo), releaseID)
}

func (e endpoints) tagURL(repo RepoInfo, tag string) string {
	return fmt.Sprintf("%s/tags/%s", e.releasesURL(repo), tag)
}

func (e endpoints) latestURL(repo RepoInfo) string {
	return e.releasesURL(repo) + "/latest"
}

// uploadURL targets the upload host, not the API host.
func (e endpoints) uploadURL(repo RepoInfo, releaseID int64) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/%d/assets", e.upload, repo.Owner, repo.Name, releaseID)
}
