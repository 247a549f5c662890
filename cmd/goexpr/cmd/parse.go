package cmd

import (
	"github.com/kolotsey/goexpr/internal/lexer"
	"github.com/kolotsey/goexpr/internal/shuntingyard"
	"github.com/kolotsey/goexpr/internal/validator"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expr>",
	Short: "Dump the compiled RPN program",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	source := args[0]

	toks, err := lexer.Lex(source)
	if err != nil {
		printEvalError(source, err)
		return errSilent
	}
	if err := validator.Validate(toks); err != nil {
		printEvalError(source, err)
		return errSilent
	}
	rpn, err := shuntingyard.Compile(toks)
	if err != nil {
		printEvalError(source, err)
		return errSilent
	}

	for _, t := range rpn {
		pretty.Println(t)
	}
	return nil
}
