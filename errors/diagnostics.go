package errors

import (
	"fmt"
	"os"
)

// Diagnostic is called with a formatted message whenever a precondition
// violation is about to be returned as an error, giving operators a
// visible signal alongside the returned error value. Tests may override
// it to capture or silence the output.
var Diagnostic = func(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
