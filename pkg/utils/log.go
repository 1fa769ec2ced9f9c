// Package utils provides small helpers shared by the packages and commands.
package utils

import (
	"fmt"
	"io"
)

// Log will format and write the provided message to out if available.
func Log(out io.Writer, msg string) {
	if out != nil {
		fmt.Fprintf(out, "==> %s\n", msg)
	}
}

// Logf is like Log but formats the message using the provided arguments.
func Logf(out io.Writer, format string, args ...interface{}) {
	Log(out, fmt.Sprintf(format, args...))
}
