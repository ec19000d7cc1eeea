package cli

import (
	"strconv"
	"strings"

	"github.com/jmgilman/go/releases"
	"github.com/jmgilman/go/releases/errors"
)

// parseRepo parses "owner/name".
func parseRepo(arg string) (releases.RepoInfo, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(arg), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		err := errors.Newf(errors.CodeInvalidInput, "invalid repository %q, expected OWNER/REPO", arg)
		return releases.RepoInfo{}, errors.WithContext(err, "field", "repository")
	}
	return releases.RepoInfo{Owner: owner, Name: name}, nil
}

// parseID parses a positive numeric release or asset ID.
func parseID(field, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		err := errors.Newf(errors.CodeInvalidInput, "invalid %s %q, expected a positive integer", field, arg)
		return 0, errors.WithContext(err, "field", field)
	}
	return id, nil
}
