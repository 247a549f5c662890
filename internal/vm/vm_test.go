package vm

import (
	"testing"

	"github.com/kolotsey/goexpr/internal/lexer"
	"github.com/kolotsey/goexpr/internal/shuntingyard"
	"github.com/kolotsey/goexpr/internal/validator"
	"github.com/kolotsey/goexpr/internal/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	if err := validator.Validate(toks); err != nil {
		t.Fatalf("Validate(%q): %v", src, err)
	}
	rpn, err := shuntingyard.Compile(toks)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	m := &Machine{}
	got, err := m.Run(rpn)
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return got
}

func TestNarrowingAfterArithmetic(t *testing.T) {
	got := run(t, "2+2")
	if got.Kind != value.Integer || got.I != 4 {
		t.Fatalf("got %+v, want Integer(4)", got)
	}
}

func TestNarrowingOfZeroResult(t *testing.T) {
	for _, src := range []string{"5-5", "2-2", "1-1"} {
		got := run(t, src)
		if got.Kind != value.Integer || got.I != 0 {
			t.Fatalf("%s: got %+v, want Integer(0)", src, got)
		}
	}
}

func TestBitwiseOr(t *testing.T) {
	got := run(t, "0b101 | 0o7")
	if got.Kind != value.Integer || got.I != 7 {
		t.Fatalf("got %+v, want Integer(7)", got)
	}
}

func TestStringConcatBuiltin(t *testing.T) {
	got := run(t, "'Hello'+', '+strtoupper('world')")
	if got.Kind != value.String || got.S != "Hello, WORLD" {
		t.Fatalf("got %+v, want String(Hello, WORLD)", got)
	}
}

func TestTernaryShortCircuitsUnselectedBranch(t *testing.T) {
	// The else branch divides by zero; if it were evaluated, this would
	// return a DivByZero error instead of the then-branch's string. Bare
	// identifier literals like `true`/`false` are resolved by pkg/expr's
	// parameter-substitution pass, not by the executor itself, so these
	// vm-level tests spell the condition with comparison operators instead.
	got := run(t, "1==1 ? 'a' : 1/0")
	if got.Kind != value.String || got.S != "a" {
		t.Fatalf("got %+v, want String(a)", got)
	}
}

func TestTernaryElseBranch(t *testing.T) {
	toks, err := lexer.Lex("1==2 ? 1/0 : 42")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if err := validator.Validate(toks); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	rpn, err := shuntingyard.Compile(toks)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m := &Machine{}
	got, err := m.Run(rpn)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.I != 42 {
		t.Fatalf("got %+v, want Integer(42)", got)
	}
}

func TestDivByZeroPropagates(t *testing.T) {
	toks, err := lexer.Lex("1/0")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if err := validator.Validate(toks); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	rpn, err := shuntingyard.Compile(toks)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m := &Machine{}
	if _, err := m.Run(rpn); err == nil {
		t.Fatalf("expected DivByZero error")
	}
}

func TestFunctionHandlerFallback(t *testing.T) {
	toks, err := lexer.Lex("triple(14)")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if err := validator.Validate(toks); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	rpn, err := shuntingyard.Compile(toks)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m := &Machine{
		FunctionHandler: func(userData any, name string, argv []value.Value) (value.Value, error) {
			if name != "triple" {
				return value.Value{}, ErrUnknownFunction
			}
			i, err := argv[0].ToInteger(0)
			if err != nil {
				return value.Value{}, err
			}
			return value.Int(i * 3), nil
		},
	}
	got, err := m.Run(rpn)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.I != 42 {
		t.Fatalf("got %+v, want Integer(42)", got)
	}
}

func TestUnknownFunctionWithoutHandler(t *testing.T) {
	toks, err := lexer.Lex("nope(1)")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if err := validator.Validate(toks); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	rpn, err := shuntingyard.Compile(toks)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m := &Machine{}
	if _, err := m.Run(rpn); err == nil {
		t.Fatalf("expected InvalFunc error")
	}
}

func TestComplexScenario(t *testing.T) {
	// 0xff+5*((-2)^7-3/2) > cos(90*PI/180) -> Boolean(false); the full
	// scenario wraps this in `? True : False`, exercised once predefined
	// constants are resolved at the pkg/expr layer (see its integration
	// tests) rather than here.
	toks, err := lexer.Lex("0xff+5*((-2)^7-3/2) > cos(90*3.14159265358979/180)")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if err := validator.Validate(toks); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	rpn, err := shuntingyard.Compile(toks)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m := &Machine{}
	got, err := m.Run(rpn)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Kind != value.Boolean || got.B != false {
		t.Fatalf("got %+v, want Boolean(false)", got)
	}
}
