// Command calsearch compiles calendar search queries to SQL and runs them
// against a SQLite calendar database.
package main

import (
	"os"

	"github.com/roach88/calsearch/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
