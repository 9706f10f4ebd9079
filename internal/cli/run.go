package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Options configures Run. Nil streams default to the process's standard streams.
type Options struct {
	Args []string // argv without the program name, typically os.Args[1:]

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is passed to a command handler. Flag values are read through the pointers returned when the flags were registered.
type Context struct {
	context.Context

	Command *Command
	Args    []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Changed reports whether the flag named name, local or inherited, was given on the command line.
func (c *Context) Changed(name string) bool {
	return c.Command.activeFlags().Changed(name)
}

// Run parses opts.Args against the tree rooted at root, runs the selected handler, and returns the process exit code. Usage mistakes print the message and the command's help to
// Err and return 2. Handler errors return their ExitCoder code, or 1, after printing any non-empty message to Err. "-h" and "--help" print help to Out and return 0.
func Run(ctx context.Context, root *Command, opts Options) int {
	if root == nil || root.Name == "" {
		panic("cli: Run needs a named root command")
	}
	c := &Context{Context: ctx, In: opts.In, Out: opts.Out, Err: opts.Err}
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Err == nil {
		c.Err = os.Stderr
	}

	selected, args, err := parseArgv(root, opts.Args)
	c.Command, c.Args = selected, args
	if errors.Is(err, errHelp) {
		writeHelp(c.Out, selected)
		return 0
	}
	if err == nil && selected.Run == nil {
		if len(args) == 0 {
			err = Usagef("missing required subcommand")
		} else {
			err = Usagef("unknown subcommand: %s", args[0])
		}
	}
	if err == nil && selected.Args != nil {
		err = selected.Args(args)
	}
	if err == nil {
		err = selected.Run(c)
	}
	if err == nil {
		return 0
	}
	return exitCode(selected, err, c.Err)
}

var errHelp = errors.New("help requested")

func parseArgv(root *Command, argv []string) (*Command, []string, error) {
	selected := root
	selecting := true
	var positional []string

	for i := 0; i < len(argv); i++ {
		token := argv[i]
		switch {
		case token == "--":
			return selected, append(positional, argv[i+1:]...), nil
		case token == "-h" || token == "--help":
			return selected, nil, errHelp
		case strings.HasPrefix(token, "-") && token != "-":
			consumed, err := parseFlag(selected.activeFlags(), token, argv[i+1:])
			if err != nil {
				return selected, nil, err
			}
			i += consumed
		default:
			if selecting {
				if child := selected.child(token); child != nil {
					selected = child
					continue
				}
				selecting = false
			}
			positional = append(positional, token)
		}
	}
	return selected, positional, nil
}

// parseFlag sets the flag named by token and returns how many of the following tokens it consumed as its value.
func parseFlag(active *FlagSet, token string, rest []string) (int, error) {
	name, value, hasValue := strings.Cut(token, "=")
	def := active.lookup(name)
	if def == nil {
		return 0, Usagef("unknown flag: %s", name)
	}

	consumed := 0
	if !hasValue {
		switch {
		case def.kind == flagBool:
			value = "true"
		case len(rest) == 0 || rest[0] == "--":
			return 0, Usagef("flag needs a value: %s", name)
		default:
			value, consumed = rest[0], 1
		}
	}
	if err := def.setValue(value); err != nil {
		return 0, Usagef("invalid value for %s: %v", def.display(), err)
	}
	return consumed, nil
}

func exitCode(cmd *Command, err error, errOut io.Writer) int {
	code := 1
	var ec ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	if code == 2 {
		fmt.Fprintln(errOut, err.Error())
		fmt.Fprintln(errOut)
		writeHelp(errOut, cmd)
		return 2
	}
	if msg := err.Error(); msg != "" && code != 0 {
		fmt.Fprintln(errOut, msg)
	}
	return code
}
