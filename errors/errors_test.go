package errors

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "release not found")

	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "release not found", err.Message())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
	require.Equal(t, "[NOT_FOUND] release not found", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "invalid id: %d", -1)
	require.Equal(t, "invalid id: -1", err.Message())
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeNetwork, "request failed")

	require.NotNil(t, err)
	require.Equal(t, CodeNetwork, err.Code())
	require.Equal(t, cause, err.Unwrap())
	require.True(t, err.Classification().IsRetryable())
	require.Equal(t, "[NETWORK_ERROR] request failed: connection refused", err.Error())
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeNotFound, "test"))
	require.Nil(t, Wrapf(nil, CodeNotFound, "test %d", 1))
}

func TestWrap_PreservesClassification(t *testing.T) {
	original := New(CodeTimeout, "timeout")
	wrapped := Wrap(original, CodeInternal, "operation timed out")

	require.Equal(t, CodeInternal, wrapped.Code())
	require.True(t, wrapped.Classification().IsRetryable())
}

func TestWithContext(t *testing.T) {
	err := New(CodeNotFound, "asset not found")
	err = WithContext(err, "asset_id", int64(42))
	err = WithContext(err, "owner", "o")

	ctx := err.Context()
	require.Equal(t, int64(42), ctx["asset_id"])
	require.Equal(t, "o", ctx["owner"])
	require.Equal(t, CodeNotFound, err.Code())

	// mutating the returned map must not affect the error
	ctx["owner"] = "changed"
	require.Equal(t, "o", err.Context()["owner"])
}

func TestWithContext_StandardError(t *testing.T) {
	std := stderrors.New("plain")
	err := WithContext(std, "k", "v")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, std, err.Unwrap())
	require.Nil(t, WithContext(nil, "k", "v"))
}

func TestWithContextMap_Overrides(t *testing.T) {
	err := WithContext(New(CodeConflict, "exists"), "a", 1)
	err = WithContextMap(err, map[string]interface{}{"a": 2, "b": 3})

	assert.Equal(t, 2, err.Context()["a"])
	assert.Equal(t, 3, err.Context()["b"])
}

func TestHelpers(t *testing.T) {
	sentinel := New(CodeNotFound, "not found")
	wrapped := Wrap(sentinel, CodeInternal, "lookup failed")

	require.True(t, Is(wrapped, sentinel))

	var platformErr PlatformError
	require.True(t, As(wrapped, &platformErr))
	require.Equal(t, CodeInternal, platformErr.Code())

	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		retryable bool
	}{
		{name: "nil", err: nil, wantCode: CodeUnknown, retryable: false},
		{name: "standard error", err: stderrors.New("x"), wantCode: CodeUnknown, retryable: false},
		{name: "rate limit", err: New(CodeRateLimit, "slow down"), wantCode: CodeRateLimit, retryable: true},
		{name: "unavailable", err: New(CodeUnavailable, "502"), wantCode: CodeUnavailable, retryable: true},
		{name: "decode", err: New(CodeDecodeFailed, "bad json"), wantCode: CodeDecodeFailed, retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, GetCode(tt.err))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestClassification_UnknownCodeIsPermanent(t *testing.T) {
	require.Equal(t, ClassificationPermanent, getDefaultClassification(ErrorCode("SOMETHING_NEW")))
}

func TestToJSON(t *testing.T) {
	require.Nil(t, ToJSON(nil))

	err := WithContext(New(CodeNotFound, "asset not found"), "status_code", 404)
	resp := ToJSON(Wrap(err, CodeNotFound, "get asset"))

	require.Equal(t, "NOT_FOUND", resp.Code)
	require.Equal(t, "get asset", resp.Message)
	require.Equal(t, "PERMANENT", resp.Classification)

	plain := ToJSON(stderrors.New("boom"))
	require.Equal(t, "UNKNOWN", plain.Code)
	require.Equal(t, "boom", plain.Message)
}

func TestMarshalJSON(t *testing.T) {
	err := WithContext(New(CodeTimeout, "deadline exceeded"), "url", "https://api.github.com")

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	require.JSONEq(t, `{
		"code": "TIMEOUT",
		"message": "deadline exceeded",
		"classification": "RETRYABLE",
		"context": {"url": "https://api.github.com"}
	}`, string(data))
}
