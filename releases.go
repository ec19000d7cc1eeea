package releases

import (
	"context"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/jmgilman/go/releases/errors"
)

// GetReleaseByTag retrieves the release for a tag.
func (c *Client) GetReleaseByTag(ctx context.Context, repo RepoInfo, tag string) (*Release, error) {
	return c.getRelease(ctx, c.endpoints.tagURL(repo, tag))
}

// GetLatestRelease retrieves the latest published full release.
// Drafts and prereleases are never returned.
func (c *Client) GetLatestRelease(ctx context.Context, repo RepoInfo) (*Release, error) {
	return c.getRelease(ctx, c.endpoints.latestURL(repo))
}

// GetRelease retrieves a release by ID.
func (c *Client) GetRelease(ctx context.Context, repo RepoInfo, releaseID int64) (*Release, error) {
	return c.getRelease(ctx, c.endpoints.releaseURL(repo, releaseID))
}

// ListReleases lists one page of releases, newest first.
func (c *Client) ListReleases(ctx context.Context, repo RepoInfo, opts ...ListOption) ([]*Release, error) {
	params, err := query.Values(newListOptions(opts...))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEncodeFailed, "failed to encode list options")
	}

	resp, err := c.execute(ctx, &outboundRequest{
		method: http.MethodGet,
		url:    c.endpoints.releasesURL(repo),
		query:  params,
	})
	if err != nil {
		return nil, err
	}

	var list []*Release
	if err := decodeResponse(resp, "release list", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateRelease creates a release. TagName is required; if the tag does not
// exist it is created from TargetCommitish.
func (c *Client) CreateRelease(ctx context.Context, repo RepoInfo, opts CreateReleaseOptions) (*Release, error) {
	if opts.TagName == "" {
		return nil, newInvalidInputError("tag_name", "tag name cannot be empty")
	}

	req, err := jsonRequest(http.MethodPost, c.endpoints.releasesURL(repo), &opts)
	if err != nil {
		return nil, err
	}
	return c.sendRelease(ctx, req)
}

// UpdateRelease updates a release. Only non-nil fields in opts are changed.
func (c *Client) UpdateRelease(ctx context.Context, repo RepoInfo, releaseID int64, opts UpdateReleaseOptions) (*Release, error) {
	req, err := jsonRequest(http.MethodPatch, c.endpoints.releaseURL(repo, releaseID), &opts)
	if err != nil {
		return nil, err
	}
	return c.sendRelease(ctx, req)
}

// DeleteRelease deletes a release. Its tag is left in place.
func (c *Client) DeleteRelease(ctx context.Context, repo RepoInfo, releaseID int64) error {
	resp, err := c.execute(ctx, &outboundRequest{
		method: http.MethodDelete,
		url:    c.endpoints.releaseURL(repo, releaseID),
	})
	if err != nil {
		return err
	}
	discardResponse(resp)
	return nil
}

func (c *Client) getRelease(ctx context.Context, target string) (*Release, error) {
	return c.sendRelease(ctx, &outboundRequest{method: http.MethodGet, url: target})
}

func (c *Client) sendRelease(ctx context.Context, req *outboundRequest) (*Release, error) {
	resp, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}

	var release Release
	if err := decodeResponse(resp, "release", &release); err != nil {
		return nil, err
	}
	return &release, nil
}
