package strassert

import (
	"strings"

	"github.com/codalotl/strassert/diff"
)

// AssertionError is the violation of an assertion. It is the only error kind of this package, and it is always fatal to the test or goroutine that raised it.
type AssertionError struct {
	Mode       Mode        // condition that did not hold
	Script     diff.Script // edit script from left to right
	Message    string      // caller-supplied message, already formatted
	HasMessage bool        // whether the caller supplied a message (it may still be empty)
}

// Error returns the full report:
//
//	assertion failed: `(left == right)`
//	  diff: <Script.String()>[: <Message>]
func (e *AssertionError) Error() string {
	var b strings.Builder
	b.WriteString("assertion failed: `(left ")
	b.WriteString(e.Mode.String())
	b.WriteString(" right)`\n  diff: ")
	b.WriteString(e.Script.String())
	if e.HasMessage {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}
