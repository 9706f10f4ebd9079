package main

import (
	"fmt"
	"io"
	"os"

	"github.com/codalotl/strassert"
	"github.com/codalotl/strassert/diff"
	"github.com/codalotl/strassert/internal/cli"
	"github.com/codalotl/strassert/internal/config"
	"github.com/codalotl/strassert/internal/simplelogger"
	"golang.org/x/term"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	color *string
	text  *bool
}

// newRootCommand builds the strdiff command tree. Settings are loaded from startDir (the working directory if empty) when a subcommand runs.
func newRootCommand(startDir string) *cli.Command {
	root := &cli.Command{
		Name:  "strdiff",
		Short: "character-level text diffs and equality checks",
		Long:  "LEFT and RIGHT are file paths, or - for stdin (at most one). With --text they are the texts themselves.\nDefaults come from the nearest " + config.FileName + " or " + config.YAMLFileName + " and the " + config.EnvColor + " and " + config.EnvFormat + " environment variables.",
	}
	rf := rootFlags{
		color: root.PersistentFlags().Enum("color", 0, "", config.ColorModes, "colorize pretty output (default from config, else auto)"),
		text:  root.PersistentFlags().Bool("text", 't', false, "treat LEFT and RIGHT as literal text"),
	}

	root.AddCommand(
		newDiffCommand(startDir, rf),
		newAssertCommand(startDir, rf, strassert.ModeEqual),
		newAssertCommand(startDir, rf, strassert.ModeNotEqual),
	)
	return root
}

func newDiffCommand(startDir string, rf rootFlags) *cli.Command {
	cmd := &cli.Command{
		Name:    "diff",
		Short:   "print the edit script from LEFT to RIGHT",
		Args:    cli.ExactArgs(2),
		Example: "strdiff diff want.txt got.txt\nstrdiff diff --text --format pretty kitten sitting",
	}
	format := cmd.Flags().Enum("format", 'f', "", config.Formats, "output format (default from config, else debug)")
	exitCode := cmd.Flags().Bool("exit-code", 0, false, "exit 1 when LEFT and RIGHT differ")

	cmd.Run = func(c *cli.Context) error {
		cfg, err := loadConfig(c, startDir, rf)
		if err != nil {
			return err
		}
		if c.Changed("format") {
			cfg.Format = *format
		}
		left, right, err := readInputs(c, *rf.text)
		if err != nil {
			return err
		}

		script := diff.DiffText(left, right)
		switch cfg.Format {
		case "pretty":
			fmt.Fprintln(c.Out, script.RenderPretty(useColor(cfg.Color, c.Out)))
		case "delta":
			fmt.Fprintln(c.Out, script.Delta())
		case "summary":
			fmt.Fprintln(c.Out, script.Summary().String())
		default:
			fmt.Fprintln(c.Out, script.String())
		}

		if *exitCode && script.Changed() {
			return cli.ExitError{Code: 1}
		}
		return nil
	}
	return cmd
}

// newAssertCommand builds "eq" or "ne", which exit 1 with the assertion report on stderr when the condition of mode does not hold.
func newAssertCommand(startDir string, rf rootFlags, mode strassert.Mode) *cli.Command {
	cmd := &cli.Command{
		Name:  "eq",
		Short: "fail unless LEFT and RIGHT are identical",
		Args:  cli.ExactArgs(2),
	}
	if mode == strassert.ModeNotEqual {
		cmd.Name = "ne"
		cmd.Short = "fail if LEFT and RIGHT are identical"
	}
	msg := cmd.Flags().String("message", 'm', "", "message appended to the failure report")

	cmd.Run = func(c *cli.Context) error {
		if _, err := loadConfig(c, startDir, rf); err != nil {
			return err
		}
		left, right, err := readInputs(c, *rf.text)
		if err != nil {
			return err
		}

		var msgAndArgs []any
		if c.Changed("message") {
			msgAndArgs = append(msgAndArgs, *msg)
		}
		if v := strassert.Evaluate(mode, left, right, msgAndArgs...); v != nil {
			simplelogger.Log("strdiff %s: assertion failed (%d fragments)", cmd.Name, len(v.Script))
			return cli.ExitError{Code: 1, Err: v}
		}
		return nil
	}
	return cmd
}

// loadConfig loads settings and applies the --color flag over them.
func loadConfig(c *cli.Context, startDir string, rf rootFlags) (config.Config, error) {
	cfg, err := config.Load(startDir)
	if err != nil {
		return config.Config{}, cli.Usagef("%v", err)
	}
	if cfg.Source != "" {
		simplelogger.Log("strdiff: settings from %s", cfg.Source)
	}
	if c.Changed("color") {
		cfg.Color = *rf.color
	}
	return cfg, nil
}

// readInputs returns the two texts named by c.Args.
func readInputs(c *cli.Context, literal bool) (string, string, error) {
	if literal {
		return c.Args[0], c.Args[1], nil
	}
	if c.Args[0] == "-" && c.Args[1] == "-" {
		return "", "", cli.Usagef("at most one of LEFT and RIGHT may be -")
	}

	texts := make([]string, 2)
	for i, name := range c.Args {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(c.In)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return "", "", cli.Usagef("read %s: %v", name, err)
		}
		texts[i] = string(data)
	}
	return texts[0], texts[1], nil
}

// useColor resolves a color mode for w. "auto" colors only when w is a terminal.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
