package main

import (
	"errors"
)

const (
	exitOK     = 0
	exitUsage  = 1
	exitFiles  = 2
	exitStrict = 3
)

var (
	errNoValidInputFiles = errors.New("no valid input files")
	errFilesFailed       = errors.New("errors occurred during the process")
	errStrictViolation   = errors.New("strict mode violations")
)

// exitError carries the process exit status for err. When reported is
// set, the details were already printed.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitUsage
}
