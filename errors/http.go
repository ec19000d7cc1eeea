package errors

import "net/http"

// FromHTTPStatus maps an unsuccessful HTTP status code onto an ErrorCode.
// Statuses without a dedicated code map to CodeHTTPStatus, except 5xx which
// maps to CodeUnavailable.
func FromHTTPStatus(statusCode int) ErrorCode {
	switch statusCode {
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusConflict:
		return CodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeInvalidInput
	case http.StatusTooManyRequests:
		return CodeRateLimit
	}

	if statusCode >= 500 {
		return CodeUnavailable
	}
	return CodeHTTPStatus
}
