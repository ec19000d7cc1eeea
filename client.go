package releases

import (
	"log/slog"
	"net/http"
)

//go:generate go run github.com/matryer/moq@latest -out mocks/doer.go -pkg mocks . Doer

// Doer sends an HTTP request and returns its response.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the GitHub Releases API.
// It is immutable after construction and safe for concurrent use.
//
// Example usage:
//
//	client, err := releases.NewClient() // token from GITHUB_TOKEN
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	repo := releases.RepoInfo{Owner: "myorg", Name: "myrepo"}
//	latest, err := client.GetLatestRelease(ctx, repo)
type Client struct {
	doer       Doer
	credential Credential
	endpoints  endpoints
	userAgent  string
	logger     *slog.Logger
}

// DefaultUserAgent identifies the client when WithUserAgent is not given.
const DefaultUserAgent = "go-releases"

// NewClient creates a Client.
//
// The credential comes from WithToken or WithCredentialSource and defaults
// to the GITHUB_TOKEN environment variable. Construction fails with
// CodeInvalidConfig when no credential is available.
func NewClient(opts ...Option) (*Client, error) {
	cfg := &config{
		source:    EnvToken(DefaultTokenEnv),
		endpoints: defaultEndpoints(),
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	credential, err := cfg.source.Resolve()
	if err != nil {
		return nil, err
	}

	doer := cfg.doer
	if doer == nil {
		doer = &http.Client{Timeout: cfg.timeout}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		doer:       doer,
		credential: credential,
		endpoints:  cfg.endpoints,
		userAgent:  cfg.userAgent,
		logger:     logger,
	}, nil
}

// BaseURL returns the API host used for metadata requests.
func (c *Client) BaseURL() string {
	return c.endpoints.api
}

// UploadURL returns the host used for asset uploads.
func (c *Client) UploadURL() string {
	return c.endpoints.upload
}
