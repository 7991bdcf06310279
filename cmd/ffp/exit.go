package main

import "errors"

const (
	exitFatal    = 1
	exitPartial  = 2
	exitMismatch = 3
)

// exitError carries a process exit code. The command has already reported
// the condition when silent is set.
type exitError struct {
	code   int
	msg    string
	silent bool
}

func (e *exitError) Error() string {
	return e.msg
}

func newExitError(code int, msg string) error {
	return &exitError{code: code, msg: msg, silent: true}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitFatal
}

func isSilent(err error) bool {
	var exitErr *exitError
	return errors.As(err, &exitErr) && exitErr.silent
}
