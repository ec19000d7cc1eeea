package releases

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/jmgilman/go/releases/errors"
)

// Header values attached to every request.
const (
	mediaTypeGitHubJSON = "application/vnd.github+json"
	mediaTypeJSON       = "application/json"
)

// outboundRequest describes one API call before it is dispatched.
type outboundRequest struct {
	method      string
	url         string
	query       url.Values
	body        io.Reader
	contentType string

	// contentLength is used when body has no length the http package can infer.
	contentLength int64
}

// jsonRequest returns an outboundRequest whose body is payload encoded as JSON.
func jsonRequest(method, target string, payload any) (*outboundRequest, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeEncodeFailed, "failed to encode request body")
	}
	return &outboundRequest{
		method:      method,
		url:         target,
		body:        bytes.NewReader(data),
		contentType: mediaTypeJSON,
	}, nil
}

// prepareAuthenticated attaches the accept, identification and authorization
// headers. Every request goes through here before dispatch.
func prepareAuthenticated(req *http.Request, credential Credential, userAgent string) *http.Request {
	req.Header.Set("Accept", mediaTypeGitHubJSON)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", credential.authorization())
	return req
}

// outcome is the result of classifying a response status.
type outcome int

const (
	outcomeFailure outcome = iota
	outcomeSuccess
)

// statusRule maps a set of statuses to an outcome.
type statusRule struct {
	name    string
	matches func(status int) bool
	outcome outcome
}

// statusRules is evaluated in order; the first match wins. A status matching
// no rule is a failure.
var statusRules = []statusRule{
	{
		name:    "2xx",
		matches: func(status int) bool { return status >= 200 && status <= 299 },
		outcome: outcomeSuccess,
	},
	{
		// some endpoints answer with a redirect to signal availability
		name:    "found",
		matches: func(status int) bool { return status == http.StatusFound },
		outcome: outcomeSuccess,
	},
}

func classifyStatus(status int) outcome {
	for _, rule := range statusRules {
		if rule.matches(status) {
			return rule.outcome
		}
	}
	return outcomeFailure
}

// execute builds, authenticates and dispatches req, then classifies the response.
//
// On success the response is returned with its body unread; the caller must
// close it. On failure the body has already been read and closed.
func (c *Client) execute(ctx context.Context, req *outboundRequest) (*http.Response, error) {
	target := req.url
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		err = errors.Wrap(err, errors.CodeInvalidInput, "failed to build request")
		return nil, errors.WithContext(err, "url", target)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.contentLength > 0 && httpReq.ContentLength == 0 {
		httpReq.ContentLength = req.contentLength
	}
	prepareAuthenticated(httpReq, c.credential, c.userAgent)

	start := time.Now()
	resp, err := c.doer.Do(httpReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			discardResponse(resp)
		}
		c.logger.DebugContext(ctx, "github request failed",
			"method", req.method,
			"url", target,
			"duration", time.Since(start),
			"error", err,
		)
		return nil, newTransportError(req.method, target, transportCode(err), err)
	}

	c.logger.DebugContext(ctx, "github request",
		"method", req.method,
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if classifyStatus(resp.StatusCode) == outcomeSuccess {
		return resp, nil
	}

	defer resp.Body.Close()
	// best effort: a partial body is still reported
	body, _ := io.ReadAll(resp.Body)
	return nil, newStatusError(req.method, target, resp.StatusCode, body)
}

// transportCode distinguishes timeouts from other transport failures.
func transportCode(err error) errors.ErrorCode {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.CodeTimeout
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.CodeTimeout
	}
	return errors.CodeNetwork
}

// errTrailingData reports a body holding more than one JSON value.
var errTrailingData = stderrors.New("unexpected data after JSON value")

// decodeResponse decodes the body of a successful response into v and closes it.
// The body must hold exactly one JSON value.
func decodeResponse(resp *http.Response, target string, v any) error {
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(v); err != nil {
		return newDecodeError(target, err)
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case err == nil:
		return newDecodeError(target, errTrailingData)
	case !stderrors.Is(err, io.EOF):
		return newDecodeError(target, err)
	}
	return nil
}

// discardResponse drains and closes the body of a successful response.
func discardResponse(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
