// Package releases is a client for the GitHub Releases API.
//
// It reads, creates, updates and deletes releases, and manages the binary
// assets attached to them. Every call goes through the same pipeline. The
// pipeline builds the endpoint URL and attaches the Accept, User-Agent and
// Authorization headers. It then dispatches the request and classifies the
// response status.
//
// # Creating a client
//
// The token is resolved once, at construction:
//
//	// From GITHUB_TOKEN
//	client, err := releases.NewClient()
//
//	// Explicit
//	client, err := releases.NewClient(releases.WithToken("ghp_..."))
//
//	// Another variable
//	client, err := releases.NewClient(
//	    releases.WithCredentialSource(releases.EnvToken("RELEASE_TOKEN")),
//	)
//
// NewClient fails when no token is available. The Client holds no mutable
// state and may be shared between goroutines.
//
// # Working with releases
//
//	repo := releases.RepoInfo{Owner: "myorg", Name: "myrepo"}
//
//	latest, err := client.GetLatestRelease(ctx, repo)
//	byTag, err := client.GetReleaseByTag(ctx, repo, "v1.2.0")
//
//	created, err := client.CreateRelease(ctx, repo, releases.CreateReleaseOptions{
//	    TagName: "v1.3.0",
//	    Draft:   github.Bool(true),
//	})
//
// # Working with assets
//
//	assets, err := client.ListReleaseAssets(ctx, repo, latest.ID, releases.WithPerPage(100))
//
//	asset, err := client.UploadReleaseAsset(ctx, repo, latest.ID,
//	    "app.tar.gz", "application/gzip", bytes.NewReader(data),
//	    releases.WithLabel("Linux build"),
//	)
//
//	asset, err = client.UpdateReleaseAsset(ctx, repo, asset.ID, releases.WithAssetLabel("Linux amd64"))
//
//	err = client.DeleteReleaseAsset(ctx, repo, asset.ID)
//
// Files on any billy.Filesystem can be uploaded directly; name, size and
// content type are derived from the file:
//
//	asset, err := client.UploadReleaseAssetFile(ctx, repo, latest.ID, osfs.New("dist"), "app.tar.gz")
//
// # Response classification
//
// Statuses 200-299 and 302 are successes. Every other status yields an error
// wrapping a *StatusError that carries the status code and the body text.
// Requests that never get a response yield a *TransportError, and bodies that
// fail to decode yield a *DecodeError. All three arrive wrapped in an
// errors.PlatformError:
//
//	release, err := client.GetReleaseByTag(ctx, repo, "v9.9.9")
//	if releases.IsNotFound(err) {
//	    // no such release
//	}
//
//	var statusErr *releases.StatusError
//	if errors.As(err, &statusErr) {
//	    fmt.Println(statusErr.StatusCode, statusErr.Body)
//	}
//
// Nothing is retried. errors.IsRetryable reports whether a failure looks
// transient, and the retry policy belongs to the caller.
//
// # Timeouts
//
// Deadlines come from the context passed to each call, or from the transport:
//
//	client, err := releases.NewClient(releases.WithTimeout(30 * time.Second))
package releases
