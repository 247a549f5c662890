package validator

import (
	"testing"

	"github.com/kolotsey/goexpr/internal/lexer"
	"github.com/kolotsey/goexpr/internal/token"
)

func mustLex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", src, err)
	}
	return toks
}

func TestValidatePromotesFunction(t *testing.T) {
	toks := mustLex(t, "cos(1)")
	if err := Validate(toks); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if toks[0].Kind != token.KindFunction {
		t.Errorf("Kind = %v, want KindFunction", toks[0].Kind)
	}
}

func TestValidateValidExpressions(t *testing.T) {
	for _, src := range []string{
		"1 + 2",
		"(1 + 2) * 3",
		"f(1, 2, 3)",
		"f()",
		"-1 + -2",
		"true ? 1 : 2",
		"a.b + c",
	} {
		toks := mustLex(t, src)
		if err := Validate(toks); err != nil {
			t.Errorf("Validate(%q) unexpected error: %v", src, err)
		}
	}
}

func TestValidateRejections(t *testing.T) {
	for _, src := range []string{
		"1 + (2*)",  // operator without right operand
		"(1",        // unclosed
		"1 2",       // operand without operator
		"* 1",       // unexpected operator at start
		"(, 1)",     // paren followed by comma
		"()",        // paren without operand, not a function call
		"(1,)",      // unexpected right paren after comma
		"1 + )",     // unexpected right paren predecessor fine, successor check
	} {
		toks := mustLex(t, src)
		if err := Validate(toks); err == nil {
			t.Errorf("Validate(%q) expected error, got nil", src)
		}
	}
}
