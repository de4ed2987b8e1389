// Exit codes and error reporting for the phonebook CLI.
package main

import (
	"errors"
	"io"

	"github.com/mesh-intelligence/phonebook/internal/render"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries an explicit exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by the user's input.
func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// exitCode maps err to a process exit code. Store failures are system
// errors; everything else (argument and flag errors) is a user error.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if types.KindOf(err) != types.KindNone {
		return exitSysError
	}
	return exitUserError
}

// reportError prints err to w and returns its exit code.
func reportError(w io.Writer, err error) int {
	render.Failure(w, "phonebook: %v", err)
	return exitCode(err)
}
