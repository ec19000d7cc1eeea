package releases

import (
	"log/slog"
	"os"

	"github.com/jmgilman/go/releases/errors"
)

// DefaultTokenEnv is the environment variable read when no explicit token is given.
const DefaultTokenEnv = "GITHUB_TOKEN"

const redacted = "[REDACTED]"

// Credential is an opaque authorization token.
// It prints and logs as "[REDACTED]".
type Credential struct {
	token string
}

// NewCredential wraps a raw token.
func NewCredential(token string) Credential {
	return Credential{token: token}
}

// IsZero reports whether the credential holds no token.
func (c Credential) IsZero() bool {
	return c.token == ""
}

// String implements fmt.Stringer without revealing the token.
func (c Credential) String() string {
	return redacted
}

// GoString keeps %#v from revealing the token.
func (c Credential) GoString() string {
	return "releases.Credential{" + redacted + "}"
}

// LogValue implements slog.LogValuer.
func (c Credential) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// authorization returns the Authorization header value.
func (c Credential) authorization() string {
	return "token " + c.token
}

// CredentialSource resolves a Credential once, when a Client is constructed.
type CredentialSource interface {
	Resolve() (Credential, error)
}

// ExplicitToken returns a source that always yields token.
func ExplicitToken(token string) CredentialSource {
	return explicitSource{token: token}
}

// EnvToken returns a source that reads the named environment variable.
func EnvToken(name string) CredentialSource {
	return EnvTokenFrom(name, os.LookupEnv)
}

// EnvTokenFrom is EnvToken with a custom lookup function, so tests can
// resolve a credential without touching the process environment.
func EnvTokenFrom(name string, lookup func(string) (string, bool)) CredentialSource {
	return envSource{name: name, lookup: lookup}
}

type explicitSource struct {
	token string
}

func (s explicitSource) Resolve() (Credential, error) {
	if s.token == "" {
		err := errors.New(errors.CodeInvalidConfig, "explicit token is empty")
		return Credential{}, errors.WithContext(err, "source", "explicit")
	}
	return NewCredential(s.token), nil
}

type envSource struct {
	name   string
	lookup func(string) (string, bool)
}

func (s envSource) Resolve() (Credential, error) {
	value, ok := s.lookup(s.name)
	if !ok || value == "" {
		err := errors.Newf(errors.CodeInvalidConfig, "no token found in environment variable %s", s.name)
		return Credential{}, errors.WithContextMap(err, map[string]interface{}{
			"source":   "environment",
			"variable": s.name,
		})
	}
	return NewCredential(value), nil
}
