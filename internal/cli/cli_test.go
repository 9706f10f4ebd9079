package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code int
	out  string
	err  string
}

func run(root *Command, args ...string) result {
	var out, errOut bytes.Buffer
	code := Run(context.Background(), root, Options{Args: args, In: strings.NewReader(""), Out: &out, Err: &errOut})
	return result{code: code, out: out.String(), err: errOut.String()}
}

type tree struct {
	root    *Command
	color   *string
	verbose *bool
	msg     *string
	got     []string
	changed bool
}

func newTree(runErr error) *tree {
	tr := &tree{root: &Command{Name: "tool", Short: "does things"}}
	tr.color = tr.root.PersistentFlags().Enum("color", 0, "auto", []string{"auto", "always", "never"}, "colorize output")
	tr.verbose = tr.root.PersistentFlags().Bool("verbose", 'v', false, "")

	leaf := &Command{
		Name:    "eq",
		Short:   "compare",
		Example: "tool eq a b",
		Args:    ExactArgs(2),
		Run: func(c *Context) error {
			tr.got = c.Args
			tr.changed = c.Changed("color")
			return runErr
		},
	}
	tr.msg = leaf.Flags().String("message", 'm', "", "failure message")
	tr.root.AddCommand(leaf)
	return tr
}

func TestRun_ParsesFlagsAndArgs(t *testing.T) {
	tr := newTree(nil)
	res := run(tr.root, "--color=never", "eq", "-v", "left", "-m", "hello", "-")
	require.Equal(t, 0, res.code, res.err)

	assert.Equal(t, []string{"left", "-"}, tr.got)
	assert.Equal(t, "never", *tr.color)
	assert.True(t, *tr.verbose)
	assert.Equal(t, "hello", *tr.msg)
	assert.True(t, tr.changed)
}

func TestRun_DefaultsAndDoubleDash(t *testing.T) {
	tr := newTree(nil)
	res := run(tr.root, "eq", "--", "-m", "--color")
	require.Equal(t, 0, res.code, res.err)

	assert.Equal(t, []string{"-m", "--color"}, tr.got)
	assert.Equal(t, "auto", *tr.color)
	assert.Equal(t, "", *tr.msg)
	assert.False(t, tr.changed)
}

func TestRun_SingleDashLongAndEqualsForms(t *testing.T) {
	tr := newTree(nil)
	res := run(tr.root, "eq", "-message=a=b", "-color", "always", "-verbose=false", "x", "y")
	require.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "a=b", *tr.msg)
	assert.Equal(t, "always", *tr.color)
	assert.False(t, *tr.verbose)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing subcommand", nil, "missing required subcommand"},
		{"unknown subcommand", []string{"nope"}, "unknown subcommand: nope"},
		{"unknown flag", []string{"eq", "--bogus", "a", "b"}, "unknown flag: --bogus"},
		{"missing value", []string{"eq", "a", "b", "-m"}, "flag needs a value: -m"},
		{"bad enum", []string{"--color", "sometimes", "eq", "a", "b"}, "invalid value for --color: want one of auto|always|never"},
		{"arg count", []string{"eq", "a"}, "expected 2 args, got 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(newTree(nil).root, tt.args...)
			assert.Equal(t, 2, res.code)
			assert.True(t, strings.HasPrefix(res.err, tt.wantErr+"\n\n"), res.err)
			assert.Contains(t, res.err, "Usage:")
			assert.Empty(t, res.out)
		})
	}
}

func TestRun_HandlerErrors(t *testing.T) {
	res := run(newTree(errors.New("boom")).root, "eq", "a", "b")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "boom\n", res.err)

	res = run(newTree(ExitError{Code: 1}).root, "eq", "a", "b")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.err)

	res = run(newTree(ExitError{Code: 3, Err: errors.New("three")}).root, "eq", "a", "b")
	assert.Equal(t, 3, res.code)
	assert.Equal(t, "three\n", res.err)

	res = run(newTree(Usagef("bad input %q", "x")).root, "eq", "a", "b")
	assert.Equal(t, 2, res.code)
	assert.True(t, strings.HasPrefix(res.err, "bad input \"x\"\n\ntool eq - compare\n"), res.err)
}

func TestRun_Help(t *testing.T) {
	res := run(newTree(nil).root, "eq", "--help")
	require.Equal(t, 0, res.code)
	assert.Empty(t, res.err)

	exp := `tool eq - compare

Usage:
  tool eq [flags] [args]

Flags:
      --color <auto|always|never>	colorize output
  -m, --message <string>	failure message
  -v, --verbose

Example:
  tool eq a b
`
	assert.Equal(t, exp, res.out)

	res = run(newTree(nil).root, "-h")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.out, "Usage:\n  tool [flags] <command>\n")
	assert.Contains(t, res.out, "Commands:\n  eq\tcompare\n")
}

func TestAddCommand_Panics(t *testing.T) {
	root := &Command{Name: "root"}
	assert.Panics(t, func() { root.AddCommand(nil) })
	assert.Panics(t, func() { root.AddCommand(&Command{}) })

	child := &Command{Name: "child"}
	root.AddCommand(child)
	assert.Panics(t, func() { (&Command{Name: "other"}).AddCommand(child) })
	assert.Len(t, root.Commands(), 1)
}

func TestFlagSet_DuplicatesPanic(t *testing.T) {
	fs := newFlagSet()
	fs.Bool("a", 'a', false, "")
	assert.Panics(t, func() { fs.String("a", 0, "", "") })
	assert.Panics(t, func() { fs.String("b", 'a', "", "") })
	assert.Panics(t, func() { fs.Enum("c", 0, "", nil, "") })
	assert.Panics(t, func() { fs.Bool("", 0, false, "") })
}
