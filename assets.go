package releases

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/google/go-querystring/query"
	"github.com/jmgilman/go/releases/errors"
)

// defaultContentType is used for uploads whose extension has no known MIME type.
const defaultContentType = "application/octet-stream"

// GetReleaseAsset retrieves a release asset by ID.
func (c *Client) GetReleaseAsset(ctx context.Context, repo RepoInfo, assetID int64) (*Asset, error) {
	resp, err := c.execute(ctx, &outboundRequest{
		method: http.MethodGet,
		url:    c.endpoints.assetURL(repo, assetID),
	})
	if err != nil {
		return nil, err
	}

	var asset Asset
	if err := decodeResponse(resp, "asset", &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateReleaseAsset changes the name, label or state of an asset.
// Fields without an option are left unchanged.
func (c *Client) UpdateReleaseAsset(ctx context.Context, repo RepoInfo, assetID int64, opts ...AssetUpdateOption) (*Asset, error) {
	var update UpdateAssetOptions
	for _, opt := range opts {
		opt(&update)
	}

	req, err := jsonRequest(http.MethodPatch, c.endpoints.assetURL(repo, assetID), &update)
	if err != nil {
		return nil, err
	}

	resp, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}

	var asset Asset
	if err := decodeResponse(resp, "asset", &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteReleaseAsset deletes a release asset.
func (c *Client) DeleteReleaseAsset(ctx context.Context, repo RepoInfo, assetID int64) error {
	resp, err := c.execute(ctx, &outboundRequest{
		method: http.MethodDelete,
		url:    c.endpoints.assetURL(repo, assetID),
	})
	if err != nil {
		return err
	}
	discardResponse(resp)
	return nil
}

// ListReleaseAssets lists one page of the assets of a release.
// Without options the first page of 30 is returned.
func (c *Client) ListReleaseAssets(ctx context.Context, repo RepoInfo, releaseID int64, opts ...ListOption) ([]*Asset, error) {
	params, err := query.Values(newListOptions(opts...))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEncodeFailed, "failed to encode list options")
	}

	resp, err := c.execute(ctx, &outboundRequest{
		method: http.MethodGet,
		url:    c.endpoints.releaseAssetsURL(repo, releaseID),
		query:  params,
	})
	if err != nil {
		return nil, err
	}

	var assets []*Asset
	if err := decodeResponse(resp, "asset list", &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// UploadReleaseAsset uploads body as a new asset of a release.
//
// name and contentType are required. The request goes to the upload host.
// For bodies whose length the http package cannot infer (anything other than
// *bytes.Buffer, *bytes.Reader or *strings.Reader), pass WithContentLength.
func (c *Client) UploadReleaseAsset(
	ctx context.Context,
	repo RepoInfo,
	releaseID int64,
	name, contentType string,
	body io.Reader,
	opts ...UploadOption,
) (*Asset, error) {
	if name == "" {
		return nil, newInvalidInputError("name", "asset name cannot be empty")
	}
	if contentType == "" {
		return nil, newInvalidInputError("content_type", "content type cannot be empty")
	}

	cfg := &uploadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	params, err := query.Values(UploadAssetOptions{Name: name, Label: cfg.label})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEncodeFailed, "failed to encode upload options")
	}

	resp, err := c.execute(ctx, &outboundRequest{
		method:        http.MethodPost,
		url:           c.endpoints.uploadURL(repo, releaseID),
		query:         params,
		body:          body,
		contentType:   contentType,
		contentLength: cfg.contentLength,
	})
	if err != nil {
		return nil, err
	}

	var asset Asset
	if err := decodeResponse(resp, "asset", &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// UploadReleaseAssetFile uploads the file at filePath on fs as a new asset.
//
// The asset name defaults to the file's base name and the content type to the
// MIME type of its extension, falling back to application/octet-stream.
func (c *Client) UploadReleaseAssetFile(
	ctx context.Context,
	repo RepoInfo,
	releaseID int64,
	fs billy.Filesystem,
	filePath string,
	opts ...UploadOption,
) (*Asset, error) {
	info, err := fs.Stat(filePath)
	if err != nil {
		err = errors.Wrap(err, errors.CodeInvalidInput, "failed to stat asset file")
		return nil, errors.WithContext(err, "path", filePath)
	}
	if info.IsDir() {
		return nil, errors.WithContext(newInvalidInputError("path", "asset path is a directory"), "path", filePath)
	}

	cfg := &uploadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	name := cfg.name
	if name == "" {
		name = path.Base(filePath)
	}
	contentType := cfg.contentType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(filePath))
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	f, err := fs.Open(filePath)
	if err != nil {
		err = errors.Wrap(err, errors.CodeInvalidInput, "failed to open asset file")
		return nil, errors.WithContext(err, "path", filePath)
	}
	defer f.Close()

	uploadOpts := append([]UploadOption{WithContentLength(info.Size())}, opts...)
	return c.UploadReleaseAsset(ctx, repo, releaseID, name, contentType, f, uploadOpts...)
}

// newInvalidInputError creates an invalid input error with context.
func newInvalidInputError(field, reason string) error {
	err := errors.New(errors.CodeInvalidInput, reason)
	return errors.WithContext(err, "field", field)
}
