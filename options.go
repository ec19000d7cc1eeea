package releases

// This file contains the client options and the per-operation option helpers.

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jmgilman/go/releases/errors"
)

// config holds configuration for NewClient.
type config struct {
	source    CredentialSource
	doer      Doer
	timeout   time.Duration
	endpoints endpoints
	userAgent string
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*config) error

// WithToken sets an explicit token, bypassing the environment.
func WithToken(token string) Option {
	return func(cfg *config) error {
		if token == "" {
			err := errors.New(errors.CodeInvalidInput, "token cannot be empty")
			return errors.WithContext(err, "field", "token")
		}
		cfg.source = ExplicitToken(token)
		return nil
	}
}

// WithCredentialSource sets where the token is resolved from.
func WithCredentialSource(source CredentialSource) Option {
	return func(cfg *config) error {
		if source == nil {
			err := errors.New(errors.CodeInvalidInput, "credential source cannot be nil")
			return errors.WithContext(err, "field", "source")
		}
		cfg.source = source
		return nil
	}
}

// WithHTTPClient sets the transport used for all requests.
// Its own timeout, TLS and redirect settings apply unchanged.
func WithHTTPClient(doer Doer) Option {
	return func(cfg *config) error {
		if doer == nil {
			err := errors.New(errors.CodeInvalidInput, "http client cannot be nil")
			return errors.WithContext(err, "field", "http_client")
		}
		cfg.doer = doer
		return nil
	}
}

// WithTimeout sets the timeout of the default transport.
// It has no effect when WithHTTPClient is also given.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) error {
		if timeout < 0 {
			err := errors.New(errors.CodeInvalidInput, "timeout cannot be negative")
			return errors.WithContext(err, "field", "timeout")
		}
		cfg.timeout = timeout
		return nil
	}
}

// WithBaseURL overrides the API host, e.g. for GitHub Enterprise.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		host, err := parseHost("base_url", baseURL)
		if err != nil {
			return err
		}
		cfg.endpoints.api = host
		return nil
	}
}

// WithUploadURL overrides the upload host.
func WithUploadURL(uploadURL string) Option {
	return func(cfg *config) error {
		host, err := parseHost("upload_url", uploadURL)
		if err != nil {
			return err
		}
		cfg.endpoints.upload = host
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(cfg *config) error {
		if userAgent == "" {
			err := errors.New(errors.CodeInvalidInput, "user agent cannot be empty")
			return errors.WithContext(err, "field", "user_agent")
		}
		cfg.userAgent = userAgent
		return nil
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			err := errors.New(errors.CodeInvalidInput, "logger cannot be nil")
			return errors.WithContext(err, "field", "logger")
		}
		cfg.logger = logger
		return nil
	}
}

// parseHost validates an absolute http(s) URL and strips trailing slashes.
func parseHost(field, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		err := errors.Newf(errors.CodeInvalidInput, "invalid %s: %q", field, raw)
		return "", errors.WithContext(err, "field", field)
	}
	return strings.TrimRight(raw, "/"), nil
}

// ListOption configures pagination.
type ListOption func(*ListOptions)

// WithPerPage sets the page size.
func WithPerPage(perPage int) ListOption {
	return func(opts *ListOptions) {
		opts.PerPage = perPage
	}
}

// WithPage sets the page number (1-indexed).
func WithPage(page int) ListOption {
	return func(opts *ListOptions) {
		opts.Page = page
	}
}

func newListOptions(opts ...ListOption) ListOptions {
	list := ListOptions{PerPage: DefaultPerPage, Page: DefaultPage}
	for _, opt := range opts {
		opt(&list)
	}
	return list
}

// AssetUpdateOption configures an asset update.
type AssetUpdateOption func(*UpdateAssetOptions)

// WithAssetName renames the asset.
func WithAssetName(name string) AssetUpdateOption {
	return func(opts *UpdateAssetOptions) {
		opts.Name = &name
	}
}

// WithAssetLabel sets the asset label.
func WithAssetLabel(label string) AssetUpdateOption {
	return func(opts *UpdateAssetOptions) {
		opts.Label = &label
	}
}

// WithAssetState sets the asset state.
func WithAssetState(state string) AssetUpdateOption {
	return func(opts *UpdateAssetOptions) {
		opts.State = &state
	}
}

// UploadOption configures an asset upload.
type UploadOption func(*uploadConfig)

type uploadConfig struct {
	label         string
	contentLength int64

	// used by UploadReleaseAssetFile only
	name        string
	contentType string
}

// WithLabel sets the display label of the uploaded asset.
func WithLabel(label string) UploadOption {
	return func(cfg *uploadConfig) {
		cfg.label = label
	}
}

// WithContentLength sets the body length for readers whose length cannot be
// inferred, such as *os.File.
func WithContentLength(n int64) UploadOption {
	return func(cfg *uploadConfig) {
		cfg.contentLength = n
	}
}

// WithAssetFileName overrides the asset name derived from the file path.
func WithAssetFileName(name string) UploadOption {
	return func(cfg *uploadConfig) {
		cfg.name = name
	}
}

// WithUploadContentType overrides the content type derived from the file extension.
func WithUploadContentType(contentType string) UploadOption {
	return func(cfg *uploadConfig) {
		cfg.contentType = contentType
	}
}
