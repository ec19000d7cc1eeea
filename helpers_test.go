package releases

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmgilman/go/releases/mocks"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

var testRepo = RepoInfo{Owner: "o", Name: "r"}

const releaseJSON = `{
	"url": "https://api.github.com/repos/o/r/releases/1",
	"html_url": "https://github.com/o/r/releases/v1.0.0",
	"assets_url": "https://api.github.com/repos/o/r/releases/1/assets",
	"upload_url": "https://uploads.github.com/repos/o/r/releases/1/assets{?name,label}",
	"tarball_url": null,
	"zipball_url": null,
	"id": 1,
	"node_id": "RE_1",
	"tag_name": "v1.0.0",
	"target_commitish": "main",
	"name": null,
	"body": "notes",
	"draft": false,
	"prerelease": false,
	"created_at": "2024-01-02T03:04:05Z",
	"published_at": null,
	"author": {"login": "octocat", "id": 7, "node_id": "U_7", "type": "User", "site_admin": false},
	"assets": [],
	"mentions_count": 3
}`

const assetJSON = `{
	"url": "https://api.github.com/repos/o/r/releases/assets/42",
	"browser_download_url": "https://github.com/o/r/releases/download/v1.0.0/app.tar.gz",
	"id": 42,
	"node_id": "RA_42",
	"name": "app.tar.gz",
	"label": null,
	"state": "uploaded",
	"content_type": "application/gzip",
	"size": 1024,
	"download_count": 5,
	"created_at": "2024-01-02T03:04:05Z",
	"updated_at": "2024-01-03T03:04:05Z",
	"uploader": {"login": "octocat", "id": 7, "node_id": "U_7", "gravatar_id": null, "type": "User", "site_admin": false}
}`

// newTestClient returns a client whose API host is a test server and whose
// upload host is the same server under /upload.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(
		WithToken(testToken),
		WithHTTPClient(server.Client()),
		WithBaseURL(server.URL),
		WithUploadURL(server.URL+"/upload"),
	)
	require.NoError(t, err)
	return client
}

// newMockClient returns a client backed by a DoerMock answering every request with fn.
func newMockClient(t *testing.T, fn func(*http.Request) (*http.Response, error)) (*Client, *mocks.DoerMock) {
	t.Helper()

	doer := &mocks.DoerMock{DoFunc: fn}
	client, err := NewClient(WithToken(testToken), WithHTTPClient(doer))
	require.NoError(t, err)
	return client, doer
}

func stubResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
