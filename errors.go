package releases

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/go-github/v67/github"
	"github.com/jmgilman/go/releases/errors"
)

// Error codes returned by client operations, aliased for readability.
const (
	// ErrCodeNotFound indicates the release or asset does not exist.
	ErrCodeNotFound = errors.CodeNotFound

	// ErrCodeAuthenticationFailed indicates the token was rejected.
	ErrCodeAuthenticationFailed = errors.CodeUnauthorized

	// ErrCodePermissionDenied indicates the token lacks access.
	ErrCodePermissionDenied = errors.CodeForbidden

	// ErrCodeRateLimited indicates the rate limit was exceeded.
	ErrCodeRateLimited = errors.CodeRateLimit

	// ErrCodeNetwork indicates the request never completed.
	ErrCodeNetwork = errors.CodeNetwork

	// ErrCodeDecode indicates a response body did not match the expected record.
	ErrCodeDecode = errors.CodeDecodeFailed
)

// StatusError is returned when the API answers with a status outside 2xx and 302.
type StatusError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Body is the response body decoded as UTF-8, with invalid sequences
	// replaced by U+FFFD. Empty if the body could not be read.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("github: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("github: HTTP %d: %s", e.StatusCode, e.Body)
}

// APIError decodes Body as a GitHub error document ({"message", "errors",
// "documentation_url"}). Returns nil if Body is not one.
func (e *StatusError) APIError() *github.ErrorResponse {
	var apiErr github.ErrorResponse
	if err := json.Unmarshal([]byte(e.Body), &apiErr); err != nil || apiErr.Message == "" {
		return nil
	}
	return &apiErr
}

// TransportError is returned when a request never produced an HTTP response,
// for example on DNS failure, refused connection or timeout.
type TransportError struct {
	// Description is a diagnostic description of the failure.
	Description string

	err error
}

func (e *TransportError) Error() string {
	return "github: transport: " + e.Description
}

func (e *TransportError) Unwrap() error {
	return e.err
}

// DecodeError is returned when a response body cannot be decoded into the
// expected record.
type DecodeError struct {
	// Target names the record being decoded, e.g. "release".
	Target string

	// Description is a diagnostic description of the failure.
	Description string

	err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("github: decode %s: %s", e.Target, e.Description)
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

// StatusCode returns the HTTP status carried by err, or 0 if err did not come
// from an HTTP response.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusCode(err) == 404
}

// lossyUTF8 decodes b as UTF-8. Each maximal invalid subsequence is replaced
// by one U+FFFD, so two stray bytes yield two replacements.
func lossyUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
			b = b[invalidPrefixLen(b):]
			continue
		}
		sb.Write(b[:size])
		b = b[size:]
	}
	return sb.String()
}

// invalidPrefixLen returns the length of the longest prefix of b that starts
// a well-formed sequence but does not complete one, or 1 if b[0] cannot start
// any sequence.
func invalidPrefixLen(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var n int
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		n = 2
	case c == 0xE0:
		n, lo = 3, 0xA0
	case c == 0xED:
		n, hi = 3, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		n = 3
	case c == 0xF0:
		n, lo = 4, 0x90
	case c >= 0xF1 && c <= 0xF3:
		n = 4
	case c == 0xF4:
		n, hi = 4, 0x8F
	default:
		return 1
	}

	i := 1
	for ; i < n && i < len(b); i++ {
		if i > 1 {
			lo, hi = 0x80, 0xBF
		}
		if b[i] < lo || b[i] > hi {
			break
		}
	}
	return i
}

func newStatusError(method, url string, statusCode int, body []byte) error {
	cause := &StatusError{StatusCode: statusCode, Body: lossyUTF8(body)}
	err := errors.Wrapf(cause, errors.FromHTTPStatus(statusCode), "%s %s returned %d", method, url, statusCode)
	return errors.WithContextMap(err, map[string]interface{}{
		"status_code": statusCode,
		"method":      method,
		"url":         url,
	})
}

func newTransportError(method, url string, code errors.ErrorCode, cause error) error {
	transportErr := &TransportError{Description: cause.Error(), err: cause}
	err := errors.Wrapf(transportErr, code, "%s %s failed", method, url)
	return errors.WithContextMap(err, map[string]interface{}{
		"method": method,
		"url":    url,
	})
}

func newDecodeError(target string, cause error) error {
	decodeErr := &DecodeError{Target: target, Description: cause.Error(), err: cause}
	err := errors.Wrapf(decodeErr, errors.CodeDecodeFailed, "failed to decode %s", target)
	return errors.WithContext(err, "target", target)
}
