// Command termfixture generates terminal rendering conformance fixtures.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/roach88/termfixture/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		code := cli.GetExitCode(err)
		// Command errors already reported themselves; cobra usage errors have not.
		if code == cli.ExitCommandError && !reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(code)
	}
}

// reported tells whether err came from a command that printed it.
func reported(err error) bool {
	var exitErr *cli.ExitError
	return errors.As(err, &exitErr)
}
