package strassert

import (
	"errors"
	"fmt"
	"testing"

	"github.com/codalotl/strassert/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ TestingT = (*testing.T)(nil)

// recordingT is a TestingT that records failures instead of stopping the test.
type recordingT struct {
	errors  []string
	failNow int
	helper  int
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() { r.failNow++ }
func (r *recordingT) Helper()  { r.helper++ }

func (r *recordingT) failed() bool { return len(r.errors) > 0 || r.failNow > 0 }

const (
	headerEqual    = "assertion failed: `(left == right)`\n  diff: "
	headerNotEqual = "assertion failed: `(left != right)`\n  diff: "
)

func TestEqual_Passes(t *testing.T) {
	rt := &recordingT{}
	Equal(rt, "x", "x")
	Equal(rt, "Lorem ipsum doleret", "Lorem ipsum doleret", "not used")
	Equal(rt, "", "")
	assert.False(t, rt.failed())
}

func TestEqual_FailsWithDiff(t *testing.T) {
	rt := &recordingT{}
	Equal(rt, "x", "y")

	require.Len(t, rt.errors, 1)
	assert.Equal(t, 1, rt.failNow)
	assert.Equal(t, headerEqual+"[\n    Delete(\n        \"x\",\n    ),\n    Insert(\n        \"y\",\n    ),\n]", rt.errors[0])
}

func TestEqual_FailsWithMessage(t *testing.T) {
	rt := &recordingT{}
	Equal(rt, "x", "y", "custom")

	require.Len(t, rt.errors, 1)
	assert.Equal(t, headerEqual+"[\n    Delete(\n        \"x\",\n    ),\n    Insert(\n        \"y\",\n    ),\n]: custom", rt.errors[0])
}

func TestEqual_LoremIpsum(t *testing.T) {
	rt := &recordingT{}
	Equal(rt, "Lorem ipsum doleret", "Lorem ipsum dolert", "Eror")

	require.Len(t, rt.errors, 1)
	exp := headerEqual + `[
    Equal(
        "Lorem ipsum doler",
    ),
    Delete(
        "e",
    ),
    Equal(
        "t",
    ),
]: Eror`
	assert.Equal(t, exp, rt.errors[0])
}

func TestNotEqual(t *testing.T) {
	rt := &recordingT{}
	NotEqual(rt, "x", "y")
	NotEqual(rt, "Lorem ipsum doleret", "Lorem ipsum dolert")
	assert.False(t, rt.failed())

	NotEqual(rt, "x", "x")
	require.Len(t, rt.errors, 1)
	assert.Equal(t, 1, rt.failNow)
	assert.Equal(t, headerNotEqual+"[\n    Equal(\n        \"x\",\n    ),\n]", rt.errors[0])
}

func TestNotEqual_EmptyStrings(t *testing.T) {
	rt := &recordingT{}
	NotEqual(rt, "", "", "both %s", "empty")

	require.Len(t, rt.errors, 1)
	assert.Equal(t, headerNotEqual+"[]: both empty", rt.errors[0])
}

func TestEqual_CallsHelper(t *testing.T) {
	rt := &recordingT{}
	Equal(rt, "a", "b")
	assert.Positive(t, rt.helper)
}

type name string

func TestEqual_TextTypes(t *testing.T) {
	rt := &recordingT{}
	Equal(rt, []byte("abc"), "abc")
	Equal(rt, name("abc"), []byte("abc"))
	NotEqual(rt, name("abc"), name("abd"))
	assert.False(t, rt.failed())

	Equal(rt, []byte("ab"), name("ac"))
	require.Len(t, rt.errors, 1)
	assert.Contains(t, rt.errors[0], "Delete(\n        \"b\",\n    ),\n    Insert(\n        \"c\",")
}

func TestMessage_Lazy(t *testing.T) {
	calls := 0
	msg := func() string {
		calls++
		return "computed"
	}

	rt := &recordingT{}
	Equal(rt, "a", "a", msg)
	NotEqual(rt, "a", "b", msg)
	assert.Equal(t, 0, calls)

	Equal(rt, "a", "b", msg)
	assert.Equal(t, 1, calls)
	require.Len(t, rt.errors, 1)
	assert.Contains(t, rt.errors[0], "]: computed")
}

func TestMessageFromMsgAndArgs(t *testing.T) {
	assert.Equal(t, "", messageFromMsgAndArgs())
	assert.Equal(t, "plain %d", messageFromMsgAndArgs("plain %d"))
	assert.Equal(t, "case 3 of 4", messageFromMsgAndArgs("case %d of %d", 3, 4))
	assert.Equal(t, "lazy", messageFromMsgAndArgs(func() string { return "lazy" }))
	assert.Equal(t, "{A:1}", messageFromMsgAndArgs(struct{ A int }{1}))
	assert.Equal(t, "[1 2]", messageFromMsgAndArgs(1, 2))
}

func TestEvaluate(t *testing.T) {
	assert.Nil(t, Evaluate(ModeEqual, "a", "a"))
	assert.Nil(t, Evaluate(ModeNotEqual, "a", "b"))

	v := Evaluate(ModeEqual, "a", "b", "why")
	require.NotNil(t, v)
	assert.Equal(t, ModeEqual, v.Mode)
	assert.Equal(t, diff.Script{{Op: diff.OpDelete, Text: "a"}, {Op: diff.OpInsert, Text: "b"}}, v.Script)
	assert.Equal(t, "why", v.Message)
	assert.True(t, v.HasMessage)

	v = Evaluate(ModeNotEqual, "same", "same")
	require.NotNil(t, v)
	assert.Equal(t, diff.Script{{Op: diff.OpEqual, Text: "same"}}, v.Script)
	assert.False(t, v.HasMessage)
}

func TestAssertionError_EmptyMessageStillSeparated(t *testing.T) {
	v := Evaluate(ModeEqual, "a", "b", "")
	require.NotNil(t, v)
	assert.Equal(t, headerEqual+"[\n    Delete(\n        \"a\",\n    ),\n    Insert(\n        \"b\",\n    ),\n]: ", v.Error())
}

func TestMustEqual(t *testing.T) {
	assert.NotPanics(t, func() { MustEqual("a", "a") })
	assert.NotPanics(t, func() { MustNotEqual("a", "b") })

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		MustEqual("Lorem ipsum doleret", "Lorem ipsum dolert", "Eror")
	}()

	err, ok := recovered.(error)
	require.True(t, ok, "panic value %T is not an error", recovered)
	var ae *AssertionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, ModeEqual, ae.Mode)
	assert.Equal(t, "Eror", ae.Message)
	assert.Equal(t, "Lorem ipsum doleret", ae.Script.Left())
	assert.Equal(t, "Lorem ipsum dolert", ae.Script.Right())
}

func TestMustNotEqual_Panics(t *testing.T) {
	assert.PanicsWithError(t, headerNotEqual+"[\n    Equal(\n        \"x\",\n    ),\n]", func() {
		MustNotEqual("x", "x")
	})
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "==", ModeEqual.String())
	assert.Equal(t, "!=", ModeNotEqual.String())
}
