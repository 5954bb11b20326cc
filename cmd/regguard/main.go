package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Process exit codes
const (
	exitOK               = 0
	exitError            = 1
	exitValidationFailed = 10
)

// errValidationFailed reports that the registry has findings
var errValidationFailed = errors.New("registry validation failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errValidationFailed):
		return exitValidationFailed
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}
