package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dhamidi/jurand/strict"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
)

func reportError(w io.Writer, err error) {
	var e *exitError
	if errors.As(err, &e) && e.reported {
		return
	}
	errorColor.Fprint(w, "jurand:")
	fmt.Fprintf(w, " %s\n", err)
}

func reportFileErrors(w io.Writer, errs []error) {
	errorColor.Fprint(w, "jurand:")
	fmt.Fprintf(w, " %s:\n", errFilesFailed)
	for _, err := range errs {
		fmt.Fprintf(w, "- %s\n", err)
	}
}

func reportViolations(w io.Writer, violations []strict.Violation) {
	errorColor.Fprint(w, "jurand:")
	fmt.Fprintf(w, " %s:\n", errStrictViolation)
	for _, v := range violations {
		warningColor.Fprintf(w, "- %s\n", v)
	}
}
