// Package errors provides the structured error type returned by the releases client.
//
// Every error carries a code for categorization, a classification (retryable or
// permanent), a human-readable message, optional context metadata, and an optional
// cause. Errors stay compatible with the standard library (errors.Is, errors.As,
// errors.Unwrap), so callers can still reach the typed cause underneath.
//
// # Creating errors
//
//	err := errors.New(errors.CodeInvalidInput, "asset name cannot be empty")
//	err = errors.WithContext(err, "field", "name")
//
// # Wrapping errors
//
//	resp, err := doer.Do(req)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeNetwork, "request failed")
//	}
//
// # HTTP statuses
//
// FromHTTPStatus maps a response status onto a code:
//
//	code := errors.FromHTTPStatus(http.StatusNotFound) // CodeNotFound
//
// # Classification
//
// Classification only describes an error. Nothing in this module retries, but callers
// that want to retry can ask:
//
//	if errors.IsRetryable(err) {
//	    // caller-owned backoff
//	}
//
// # JSON
//
// ToJSON flattens any error into an ErrorResponse without exposing the cause chain:
//
//	json.NewEncoder(os.Stderr).Encode(errors.ToJSON(err))
package errors
