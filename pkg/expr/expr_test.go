package expr

import (
	"context"
	"testing"

	"github.com/kolotsey/goexpr/internal/exprerr"
)

func solve(t *testing.T, src string) Value {
	t.Helper()
	e, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	v, err := e.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve(%q): %v", src, err)
	}
	return v
}

func solveErr(t *testing.T, src string) error {
	t.Helper()
	e, err := Compile(src)
	if err != nil {
		return err
	}
	_, err = e.Solve(context.Background())
	if err == nil {
		t.Fatalf("Solve(%q): expected error", src)
	}
	return err
}

func errKind(t *testing.T, err error) exprerr.Kind {
	t.Helper()
	ee, ok := err.(*exprerr.Error)
	if !ok {
		t.Fatalf("error %v is not *exprerr.Error (%T)", err, err)
	}
	return ee.Kind
}

// The ten concrete scenarios from spec §8.

func TestScenario1IntegerNarrowing(t *testing.T) {
	got := solve(t, "2+2")
	if got.Kind != Integer || got.I != 4 {
		t.Fatalf("got %+v, want Integer(4)", got)
	}
}

func TestScenario2ComplexComparison(t *testing.T) {
	got := solve(t, "0xff+5*((-2)^7-3/2) > cos(90*PI/180)? True : False")
	if got.Kind != Boolean || got.B != false {
		t.Fatalf("got %+v, want Boolean(false)", got)
	}
}

func TestScenario3StringConcatAndUppercase(t *testing.T) {
	got := solve(t, "'Hello'+', '+strtoupper('world')")
	if got.Kind != String || got.S != "Hello, WORLD" {
		t.Fatalf("got %+v, want String(Hello, WORLD)", got)
	}
}

func TestScenario4RandomBounds(t *testing.T) {
	got := solve(t, "random() >= 0 && random() < 1")
	if got.Kind != Boolean || !got.B {
		t.Fatalf("got %+v, want Boolean(true)", got)
	}
}

func TestScenario5Substr(t *testing.T) {
	got := solve(t, "substr('abcdef', -2)")
	if got.S != "ef" {
		t.Fatalf("got %+v, want String(ef)", got)
	}
	got = solve(t, "substr('abcdef', 2, 3)")
	if got.S != "cde" {
		t.Fatalf("got %+v, want String(cde)", got)
	}
}

func TestScenario6ComplexDomainError(t *testing.T) {
	err := solveErr(t, "(-2)^0.5")
	if errKind(t, err) != exprerr.Complex {
		t.Fatalf("got %v, want Complex error", err)
	}
}

func TestScenario7DivByZero(t *testing.T) {
	err := solveErr(t, "1/0")
	if errKind(t, err) != exprerr.DivByZero {
		t.Fatalf("got %v, want DivByZero error", err)
	}
}

func TestScenario8OperatorWithoutRightOperand(t *testing.T) {
	err := solveErr(t, "1 + (2*)")
	if errKind(t, err) != exprerr.InvalExpr {
		t.Fatalf("got %v, want InvalExpr error", err)
	}
}

func TestScenario9BitwiseOr(t *testing.T) {
	got := solve(t, "0b101 | 0o7")
	if got.Kind != Integer || got.I != 7 {
		t.Fatalf("got %+v, want Integer(7)", got)
	}
}

func TestScenario10TernaryShortCircuit(t *testing.T) {
	got := solve(t, "true ? 'a' : 1/0")
	if got.Kind != String || got.S != "a" {
		t.Fatalf("got %+v, want String(a)", got)
	}
}

func TestPredefinedConstantsCaseInsensitive(t *testing.T) {
	got := solve(t, "PI > 3 && PI < 4")
	if !got.B {
		t.Fatalf("got %+v, want true", got)
	}
}

func TestUnknownParameterWithoutHandler(t *testing.T) {
	err := solveErr(t, "x + 1")
	if errKind(t, err) != exprerr.InvalParam {
		t.Fatalf("got %v, want InvalParam error", err)
	}
}

func TestParameterHandlerResolvesIdentifier(t *testing.T) {
	e, err := Compile("x + 1")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	e.SetParameterHandler(func(userData any, name string) (Value, bool) {
		if name == "x" {
			return Int(41), true
		}
		return Value{}, false
	})
	got, err := e.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got.I != 42 {
		t.Fatalf("got %+v, want Integer(42)", got)
	}
}

func TestFunctionHandlerUnknownOutcome(t *testing.T) {
	e, err := Compile("mystery(1)")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	e.SetFunctionHandler(func(userData any, name string, argv []Value) (Value, FunctionOutcome) {
		return Value{}, FunctionUnknown
	})
	_, err = e.Solve(context.Background())
	if errKind(t, err) != exprerr.InvalFunc {
		t.Fatalf("got %v, want InvalFunc error", err)
	}
}

func TestFunctionHandlerErrorOutcome(t *testing.T) {
	e, err := Compile("mystery(1)")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	e.SetFunctionHandler(func(userData any, name string, argv []Value) (Value, FunctionOutcome) {
		return Value{}, FunctionError
	})
	_, err = e.Solve(context.Background())
	if errKind(t, err) != exprerr.UserFuncError {
		t.Fatalf("got %v, want UserFuncError error", err)
	}
}

func TestUserDataRoundTrip(t *testing.T) {
	e, err := Compile("x")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	e.SetUserData("marker")
	e.SetParameterHandler(func(userData any, name string) (Value, bool) {
		if userData != "marker" {
			t.Fatalf("userData = %v, want marker", userData)
		}
		return Int(1), true
	})
	if _, err := e.Solve(context.Background()); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if e.UserData() != "marker" {
		t.Fatalf("UserData() = %v, want marker", e.UserData())
	}
}

func TestEqualsComparesSourceText(t *testing.T) {
	a, _ := Compile("1+1")
	b, _ := Compile("1+1")
	c, _ := Compile("1 + 1")
	if !a.Equals(b) {
		t.Errorf("expected equal expressions with identical source")
	}
	if a.Equals(c) {
		t.Errorf("expected unequal expressions for differently-spaced source")
	}
}

func TestSolveClonesCachedProgram(t *testing.T) {
	e, err := Compile("x + 1")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	calls := 0
	e.SetParameterHandler(func(userData any, name string) (Value, bool) {
		calls++
		return Int(int64(calls)), true
	})
	first, err := e.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	second, err := e.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if first.I == second.I {
		t.Fatalf("expected distinct resolutions per Solve call, got %d and %d", first.I, second.I)
	}
	if second.I != 3 {
		t.Fatalf("got %d, want 3 (cached program must not retain the first Solve's substitution)", second.I)
	}
}

func TestValueToStringFormatting(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(42), "42"},
		{Int(-7), "-7"},
		{Bool(true), "True"},
		{Bool(false), "False"},
		{Str("verbatim"), "verbatim"},
		{Flt(1.5), "1.5"},
		{Flt(2.0), "2"},
	}
	for _, c := range cases {
		if got := ValueToString(c.v); got != c.want {
			t.Errorf("ValueToString(%+v) = %q, want %q", c.v, got, c.want)
		}
	}
}
