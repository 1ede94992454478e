package cem

import (
	"fmt"
	"os"
)

// abortFn is a variable so tests can intercept process termination; generated
// code and the runtime itself always go through the package-level default.
var abortFn = func(operation string, err error) {
	fmt.Fprintf(os.Stderr, "cem runtime: %s: %s\n", operation, err)
	os.Exit(1)
}

// SetAbortHandler replaces the process-termination behavior Abort invokes
// on a programmer error, returning a function that restores the previous
// handler. Exists so packages built on top of cem (ioruntime, strand,
// scheduler) can exercise their abort paths in tests without actually
// exiting the test binary.
func SetAbortHandler(fn func(operation string, err error)) (restore func()) {
	old := abortFn
	abortFn = fn
	return func() { abortFn = old }
}
