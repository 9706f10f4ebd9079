// Package strassert provides string equality assertions whose failure report is a character-level diff of the two values instead of the values themselves.
//
// Four call forms exist:
//   - Equal fails the test unless left == right.
//   - NotEqual fails the test if left == right.
//   - DebugEqual and DebugNotEqual behave the same, but compile to no-ops when built with the "release" tag (go test -tags release).
//
// MustEqual and MustNotEqual panic with an *AssertionError instead of failing a test, for use outside of test functions.
//
// Values can be any string or byte slice type. An optional trailing message is formatted only when the assertion fails: pass a string, a format string with arguments, or a
// func() string.
//
// Report format: on failure, the report is
//
//	assertion failed: `(left == right)`
//	  diff: [
//	    Equal(
//	        "Lorem ipsum doler",
//	    ),
//	    Delete(
//	        "e",
//	    ),
//	    Equal(
//	        "t",
//	    ),
//	]: optional message
//
// with "(left != right)" for the not-equal forms. The listing is diff.Script.String; ": message" is present only if a message was given.
package strassert
