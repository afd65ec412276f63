// Package errors provides structured error types for cipherwen.
//
// Every failure the pipeline can surface carries a machine-readable Code so
// the CLI can report which stage failed and why:
//   - INVALID_*: Input and configuration validation failures
//   - AMBIGUOUS_CANDIDATES: No distinguishing fingerprint exists
//   - UNSUPPORTED_CHARACTER: A character outside the transcoder alphabet
//   - ASSET_LOAD / OUTPUT_WRITE: Image rendering I/O failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "need at least %d candidates", 2)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeAssetLoad, origErr, "open marker %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Cipher errors
	ErrCodeAmbiguousCandidates  Code = "AMBIGUOUS_CANDIDATES"
	ErrCodeUnsupportedCharacter Code = "UNSUPPORTED_CHARACTER"

	// Image I/O errors
	ErrCodeAssetLoad   Code = "ASSET_LOAD"
	ErrCodeOutputWrite Code = "OUTPUT_WRITE"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error carries a Code next to a human message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage is err without the code prefix.
func UserMessage(err error) string {
	e, ok := asError(err)
	switch {
	case !ok:
		return err.Error()
	case e.Cause != nil:
		return e.Message + ": " + e.Cause.Error()
	default:
		return e.Message
	}
}

// Stage names the pipeline stage an error code belongs to.
func Stage(code Code) string {
	switch code {
	case ErrCodeAmbiguousCandidates:
		return "fingerprint"
	case ErrCodeUnsupportedCharacter:
		return "transcode"
	case ErrCodeAssetLoad, ErrCodeOutputWrite, ErrCodeInvalidColor:
		return "render"
	case ErrCodeInvalidConfig:
		return "config"
	case ErrCodeInvalidInput, ErrCodeFileNotFound, ErrCodeInvalidPath:
		return "input"
	default:
		return "internal"
	}
}
