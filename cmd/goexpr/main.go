// Command goexpr is the CLI front end for github.com/kolotsey/goexpr/pkg/expr.
package main

import (
	"os"

	"github.com/kolotsey/goexpr/cmd/goexpr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Subcommands print their own diagnostics (caret-annotated structural
		// errors, config-load failures); Execute's returned error only needs
		// to drive the exit code.
		os.Exit(1)
	}
}
