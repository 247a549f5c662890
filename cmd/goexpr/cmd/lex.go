package cmd

import (
	"fmt"
	"os"

	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/lexer"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <expr>",
	Short: "Dump the token stream produced by the lexer",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	source := args[0]

	toks, err := lexer.Lex(source)
	if err != nil {
		printEvalError(source, err)
		return errSilent
	}

	for _, t := range toks {
		pretty.Println(t)
	}
	return nil
}

// printEvalError renders a structural error with caret diagnostics
// (SPEC_FULL.md §7), falling back to a plain message for unrecognized
// error shapes.
func printEvalError(source string, err error) {
	if ee, ok := err.(*exprerr.Error); ok {
		fmt.Fprintln(os.Stderr, exprerr.Format(ee, source, wantColor()))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
