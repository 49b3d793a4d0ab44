package config

import (
	"fmt"
	"os"
)

// Exitf prints a formatted message to stderr and stops the process with
// exit code 1. Meant for main, where a startup failure has no caller left
// to hand the error to.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
