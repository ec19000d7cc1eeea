package errors

import (
	stderrors "errors"
	"fmt"
)

// New creates a PlatformError with the given code and message.
// The classification is the default for the code.
//
// Example:
//
//	err := errors.New(errors.CodeInvalidInput, "tag name cannot be empty")
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a PlatformError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message while preserving it as the cause.
//
// If err already contains a PlatformError its classification is preserved.
// Otherwise the default classification for code is used.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := json.NewDecoder(r).Decode(&v); err != nil {
//	    return errors.Wrap(err, errors.CodeDecodeFailed, "failed to decode release")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		classification = platformErr.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message.
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}
