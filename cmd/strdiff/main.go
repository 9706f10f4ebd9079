// Command strdiff diffs two texts at the character level and checks text equality from shell scripts, printing the same reports as the strassert package.
package main

import (
	"context"
	"os"

	"github.com/codalotl/strassert/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), newRootCommand(""), cli.Options{Args: os.Args[1:]}))
}
