// Command hookrun runs pre-commit hooks in dependency order.
package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/hookrun/internal/cmd"
	"github.com/Iron-Ham/hookrun/internal/errors"
)

func main() {
	err := cmd.Execute()
	// Hook failures are already in the report.
	if err != nil && !errors.Is(err, errors.ErrHooksFailed) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cmd.ExitCode(err))
}
