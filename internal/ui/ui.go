// Package ui holds the user-facing terminal output helpers shared by the
// config layer and the commands. Warnings are advisory only and go to
// stderr so they never corrupt piped command output.
package ui

import (
	"fmt"
	"io"
	"os"
)

// Output is where warnings are written. Tests may swap it out.
var Output io.Writer = os.Stderr

// Warningf displays a non-fatal warning to the user
func Warningf(format string, args ...interface{}) {
	fmt.Fprintf(Output, "Warning: "+format+"\n", args...)
}

// Errorf displays an error message to the user
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(Output, "Error: "+format+"\n", args...)
}
