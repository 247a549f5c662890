// Package cmd implements the goexpr CLI wrapper around pkg/expr (SPEC_FULL.md
// §6.7), grounded on the teacher's cobra command tree
// (CWBudde-go-dws cmd/dwscript/cmd).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags), mirroring the teacher's
	// root.go version vars.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "goexpr",
	Short: "Embeddable expression evaluator CLI",
	Long: `goexpr is a command-line front end for a small embeddable
expression evaluator: arithmetic, logical, string and bitwise operators
over integers, reals, booleans and strings, plus a ternary operator and
a library of built-in functions.

Examples:
  # Evaluate an expression
  goexpr eval "2+2"

  # Dump the token stream
  goexpr lex "1 + 2 * 3"

  # Dump the compiled RPN program
  goexpr parse "a > b ? 1 : 2"

  # List built-in functions
  goexpr builtins --filter str`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file (default: ~/.goexprrc)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
