package cli

import (
	"fmt"
	"io"
	"strings"
)

func writeHelp(w io.Writer, cmd *Command) {
	var names []string
	for _, c := range cmd.path() {
		names = append(names, c.Name)
	}
	full := strings.Join(names, " ")

	if cmd.Short != "" {
		fmt.Fprintf(w, "%s - %s\n", full, cmd.Short)
	} else {
		fmt.Fprintln(w, full)
	}
	if cmd.Long != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(cmd.Long, "\n"))
	}

	flags := cmd.activeFlags().sorted()
	usage := full
	if len(flags) > 0 {
		usage += " [flags]"
	}
	if len(cmd.children) > 0 {
		usage += " <command>"
	}
	if cmd.Run != nil {
		usage += " [args]"
	}
	fmt.Fprintf(w, "\nUsage:\n  %s\n", usage)

	if len(cmd.children) > 0 {
		fmt.Fprintln(w, "\nCommands:")
		for _, child := range cmd.children {
			fmt.Fprintf(w, "  %s\t%s\n", child.Name, child.Short)
		}
	}
	if len(flags) > 0 {
		fmt.Fprintln(w, "\nFlags:")
		for _, def := range flags {
			fmt.Fprintln(w, def.helpLine())
		}
	}
	if cmd.Example != "" {
		fmt.Fprintln(w, "\nExample:")
		for _, line := range strings.Split(strings.TrimRight(cmd.Example, "\n"), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
