// Package errors provides typed construction-time error definitions for the
// repricing engine. These are returned by the Data Store loader and the
// engine configuration validation when something invariant-violating
// happens (a missing file, malformed JSON, a reference-data invariant
// violation, an invalid configuration value), and by the Orchestrator for
// claim-level failures (a nil claim, no lines, duplicate line numbers) — they
// are distinct from the per-line diagnostics in internal/diagnostics, which
// model data-driven pricing outcomes that never abort a claim.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// EngineError represents a construction-time failure with a machine-readable
// code, a human message, and an optional wrapped cause.
type EngineError struct {
	Code    string
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is().
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new EngineError.
func New(code, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

// Wrap wraps an underlying error with an EngineError.
func Wrap(err error, e *EngineError) *EngineError {
	return &EngineError{Code: e.Code, Message: e.Message, Err: err}
}

// ============================================================================
// Construction-time errors
// ============================================================================

var (
	ErrDataDirNotFound = New(
		"REFDATA_DIR_NOT_FOUND",
		"reference data directory not found",
	)

	ErrReferenceFileUnreadable = New(
		"REFDATA_FILE_UNREADABLE",
		"reference data file could not be read",
	)

	ErrReferenceFileMalformed = New(
		"REFDATA_FILE_MALFORMED",
		"reference data file is not valid JSON for its expected shape",
	)

	ErrInvalidConfig = New(
		"CONFIG_INVALID",
		"engine configuration failed validation",
	)

	ErrNilClaim = New(
		"CLAIM_NIL",
		"claim must not be nil",
	)

	ErrInvalidClaimShape = New(
		"CLAIM_INVALID_SHAPE",
		"claim has no lines or duplicate line numbers",
	)
)

// GetErrorCode returns the error code for an error, or "UNKNOWN_ERROR".
func GetErrorCode(err error) string {
	var ee *EngineError
	if As(err, &ee) {
		return ee.Code
	}
	return "UNKNOWN_ERROR"
}
