package main

import "fmt"

// Exit codes for topwords CLI.
const (
	ExitOK            = 0 // Description (or dry run) written.
	ExitInvalidArgs   = 1 // Invalid arguments, config, model or missing API key.
	ExitRemoteFailure = 2 // The chat API returned an error.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
	err  error
}

func (e *exitCodeError) Error() string { return e.msg }

// Unwrap returns the underlying error, if any.
func (e *exitCodeError) Unwrap() error { return e.err }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitRemoteFailure:
			msg = "topwords: chat API request failed"
		default:
			msg = "topwords: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// wrapExit attaches err to an exitCodeError so callers can still match it
// with errors.Is or errors.As.
func wrapExit(code int, err error, format string, args ...any) *exitCodeError {
	e := exitError(code, format, args...)
	e.err = err
	return e
}
