package strassert

import (
	"fmt"

	"github.com/codalotl/strassert/diff"
)

// Text is any value exposing a string view.
type Text interface {
	~string | ~[]byte
}

// TestingT is the subset of testing.TB used to report a failure. *testing.T, *testing.B, and *testing.F satisfy it.
type TestingT interface {
	Errorf(format string, args ...any)
	FailNow()
}

type tHelper interface {
	Helper()
}

// Mode selects which condition an assertion checks.
type Mode int

const (
	ModeEqual    Mode = iota // holds when left == right
	ModeNotEqual             // holds when left != right
)

// String returns the comparison operator of m as it appears in reports.
func (m Mode) String() string {
	if m == ModeNotEqual {
		return "!="
	}
	return "=="
}

// Equal fails t unless left and right are identical strings. The failure report is described in the package documentation. Equal calls t.FailNow, so it must be called from
// the goroutine running the test.
func Equal[L, R Text](t TestingT, left L, right R, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if v := Evaluate(ModeEqual, left, right, msgAndArgs...); v != nil {
		fail(t, v)
	}
}

// NotEqual fails t if left and right are identical strings. The report's diff is then a single Equal fragment spanning the shared text.
func NotEqual[L, R Text](t TestingT, left L, right R, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if v := Evaluate(ModeNotEqual, left, right, msgAndArgs...); v != nil {
		fail(t, v)
	}
}

// MustEqual panics with an *AssertionError unless left and right are identical strings.
func MustEqual[L, R Text](left L, right R, msgAndArgs ...any) {
	if v := Evaluate(ModeEqual, left, right, msgAndArgs...); v != nil {
		panic(v)
	}
}

// MustNotEqual panics with an *AssertionError if left and right are identical strings.
func MustNotEqual[L, R Text](left L, right R, msgAndArgs ...any) {
	if v := Evaluate(ModeNotEqual, left, right, msgAndArgs...); v != nil {
		panic(v)
	}
}

// Evaluate checks the condition of mode for left and right. It returns nil if the condition holds. Otherwise, it computes the diff, formats the message, and returns the violation.
// Nothing is diffed or formatted when the condition holds.
func Evaluate[L, R Text](mode Mode, left L, right R, msgAndArgs ...any) *AssertionError {
	l, r := string(left), string(right)
	if (l == r) == (mode == ModeEqual) {
		return nil
	}
	return &AssertionError{
		Mode:       mode,
		Script:     diff.DiffText(l, r),
		Message:    messageFromMsgAndArgs(msgAndArgs...),
		HasMessage: len(msgAndArgs) > 0,
	}
}

func fail(t TestingT, v *AssertionError) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	t.Errorf("%s", v.Error())
	t.FailNow()
}

// messageFromMsgAndArgs builds the optional failure message:
//   - no args: ""
//   - a single string: used as-is
//   - a single func() string: its result
//   - a string followed by args: fmt.Sprintf(format, args...)
//   - anything else: fmt.Sprintf("%+v", ...)
func messageFromMsgAndArgs(msgAndArgs ...any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if len(msgAndArgs) == 1 {
		switch msg := msgAndArgs[0].(type) {
		case string:
			return msg
		case func() string:
			return msg()
		default:
			return fmt.Sprintf("%+v", msg)
		}
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%+v", msgAndArgs)
}
