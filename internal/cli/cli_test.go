package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jmgilman/go/releases"
	"github.com/jmgilman/go/releases/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const releaseJSON = `{"id": 1, "tag_name": "v1.0.0", "name": "First", "draft": false, "author": {"login": "octocat"}}`

const assetJSON = `{"id": 42, "name": "app.json", "state": "uploaded", "size": 2}`

// run executes the command line against server and returns stdout.
func run(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCommand(&stdout, &stderr)
	root.SetArgs(append([]string{
		"--token", "test-token",
		"--api-url", server.URL,
		"--upload-url", server.URL + "/upload",
	}, args...))

	err := root.ExecuteContext(t.Context())
	return stdout.String(), err
}

func newServer(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestLatest(t *testing.T) {
	t.Parallel()

	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/o/r/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, releaseJSON)
	})
	server := newServer(t, mux)

	t.Run("json", func(t *testing.T) {
		out, err := run(t, server, "latest", "o/r")
		require.NoError(t, err)

		var release releases.Release
		require.NoError(t, json.Unmarshal([]byte(out), &release))
		assert.Equal(t, "v1.0.0", release.TagName)
		assert.Equal(t, "token test-token", gotAuth)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, server, "-o", "yaml", "latest", "o/r")
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "v1.0.0", doc["tag_name"])
		assert.Equal(t, "First", doc["name"])
	})
}

func TestLatest_NotFound(t *testing.T) {
	t.Parallel()

	server := newServer(t, http.NewServeMux())

	_, err := run(t, server, "latest", "o/r")
	require.Error(t, err)
	assert.True(t, releases.IsNotFound(err))
}

func TestInvalidArguments(t *testing.T) {
	t.Parallel()

	server := newServer(t, http.NewServeMux())

	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{name: "repo without slash", args: []string{"latest", "nope"}, code: errors.CodeInvalidInput},
		{name: "repo with empty owner", args: []string{"latest", "/r"}, code: errors.CodeInvalidInput},
		{name: "non-numeric id", args: []string{"release", "delete", "o/r", "abc"}, code: errors.CodeInvalidInput},
		{name: "tag and id", args: []string{"release", "get", "o/r", "--tag", "v1", "--id", "1"}, code: errors.CodeInvalidInput},
		{name: "neither tag nor id", args: []string{"release", "get", "o/r"}, code: errors.CodeInvalidInput},
		{name: "bad output format", args: []string{"-o", "xml", "latest", "o/r"}, code: errors.CodeInvalidInput},
		{name: "bad asset state", args: []string{"asset", "update", "o/r", "42", "--state", "gone"}, code: errors.CodeInvalidInput},
		{name: "bad make-latest", args: []string{"release", "create", "o/r", "--tag", "v1", "--make-latest", "maybe"}, code: errors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, server, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestReleaseGet(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/o/r/releases/tags/v1.0.0", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, releaseJSON)
	})
	mux.HandleFunc("GET /repos/o/r/releases/1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, releaseJSON)
	})
	server := newServer(t, mux)

	for _, args := range [][]string{
		{"release", "get", "o/r", "--tag", "v1.0.0"},
		{"release", "get", "o/r", "--id", "1"},
	} {
		out, err := run(t, server, args...)
		require.NoError(t, err)
		assert.Contains(t, out, `"tag_name": "v1.0.0"`)
	}
}

func TestReleaseList(t *testing.T) {
	t.Parallel()

	var gotQuery map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/o/r/releases", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeJSON(w, http.StatusOK, "["+releaseJSON+"]")
	})
	server := newServer(t, mux)

	out, err := run(t, server, "release", "list", "o/r", "--per-page", "5")
	require.NoError(t, err)

	var list []releases.Release
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 1)
	assert.Equal(t, map[string][]string{"per_page": {"5"}, "page": {"1"}}, gotQuery)
}

func TestReleaseCreate(t *testing.T) {
	t.Parallel()

	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/o/r/releases", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		writeJSON(w, http.StatusCreated, releaseJSON)
	})
	server := newServer(t, mux)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "only changed flags are sent",
			args: []string{"--draft", "--make-latest", "false"},
			want: `{"tag_name":"v1.0.0","draft":true,"make_latest":"false"}`,
		},
		{
			name: "all fields",
			args: []string{
				"--name", "First", "--body", "notes", "--target", "main",
				"--prerelease=false", "--generate-notes", "--make-latest", "legacy",
			},
			want: `{"tag_name":"v1.0.0","name":"First","body":"notes","target_commitish":"main",` +
				`"prerelease":false,"generate_release_notes":true,"make_latest":"legacy"}`,
		},
	}

	for _, tt := range tests {
		_, err := run(t, server, append([]string{"release", "create", "o/r", "--tag", "v1.0.0"}, tt.args...)...)
		require.NoError(t, err, tt.name)
		assert.JSONEq(t, tt.want, gotBody, tt.name)
	}
}

func TestReleaseDelete(t *testing.T) {
	t.Parallel()

	var called bool
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /repos/o/r/releases/1", func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})
	server := newServer(t, mux)

	out, err := run(t, server, "release", "delete", "o/r", "1")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, out)
}

func TestAssetUpdate(t *testing.T) {
	t.Parallel()

	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /repos/o/r/releases/assets/42", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		writeJSON(w, http.StatusOK, assetJSON)
	})
	server := newServer(t, mux)

	_, err := run(t, server, "asset", "update", "o/r", "42", "--label", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":""}`, gotBody)
}

func TestAssetUpload(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "app.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	var (
		gotQuery       map[string][]string
		gotContentType string
		gotBody        string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload/repos/o/r/releases/1/assets", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		writeJSON(w, http.StatusCreated, assetJSON)
	})
	server := newServer(t, mux)

	out, err := run(t, server, "asset", "upload", "o/r", "1", file, "--label", "App")
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"name": {"app.json"}, "label": {"App"}}, gotQuery)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "{}", gotBody)
	assert.Contains(t, out, `"name": "app.json"`)
}

func TestAssetUpload_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var files []string
	for _, name := range []string{"a.json", "b.json", "c.json"} {
		file := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))
		files = append(files, file)
	}

	var (
		mu    sync.Mutex
		names []string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload/repos/o/r/releases/1/assets", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		mu.Lock()
		names = append(names, name)
		mu.Unlock()
		writeJSON(w, http.StatusCreated, `{"id": 1, "name": "`+name+`"}`)
	})
	server := newServer(t, mux)

	out, err := run(t, server, append([]string{"asset", "upload", "o/r", "1"}, files...)...)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.json", "b.json", "c.json"}, names)

	var assets []releases.Asset
	require.NoError(t, json.Unmarshal([]byte(out), &assets))
	require.Len(t, assets, 3)
	assert.Equal(t, "a.json", assets[0].Name)
	assert.Equal(t, "c.json", assets[2].Name)

	_, err = run(t, server, append([]string{"asset", "upload", "o/r", "1", "--name", "x"}, files...)...)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestAssetList_Match(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/o/r/releases/1/assets", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id": 1, "name": "app-linux.tar.gz"}, {"id": 2, "name": "app-darwin.zip"}, {"id": 3, "name": "checksums.txt"}]`)
	})
	server := newServer(t, mux)

	out, err := run(t, server, "asset", "list", "o/r", "1", "--match", "*.tar.gz")
	require.NoError(t, err)

	var assets []releases.Asset
	require.NoError(t, json.Unmarshal([]byte(out), &assets))
	require.Len(t, assets, 1)
	assert.Equal(t, int64(1), assets[0].ID)

	_, err = run(t, server, "asset", "list", "o/r", "1", "--match", "[")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestParseRepo(t *testing.T) {
	t.Parallel()

	repo, err := parseRepo("octocat/hello-world")
	require.NoError(t, err)
	assert.Equal(t, releases.RepoInfo{Owner: "octocat", Name: "hello-world"}, repo)

	for _, bad := range []string{"", "octocat", "octocat/", "a/b/c"} {
		_, err := parseRepo(bad)
		assert.Error(t, err, bad)
	}
}
