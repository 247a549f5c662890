// Package expr is the embeddable public API: compile an expression once,
// solve it any number of times against host-supplied parameter and function
// callbacks (spec §6). Grounded on the teacher's top-level engine handle —
// an opaque struct returned by a constructor, with setter methods and an
// Eval-style solve call (CWBudde-go-dws examples/ffi/main.go's
// dwscript.Engine usage) — but compiled-program caching plus the
// callback-based parameter/function resolution are this package's own
// design, following spec.md §2 and §6 rather than the teacher's full
// scripting-language surface.
package expr

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/lexer"
	"github.com/kolotsey/goexpr/internal/shuntingyard"
	"github.com/kolotsey/goexpr/internal/token"
	"github.com/kolotsey/goexpr/internal/validator"
	"github.com/kolotsey/goexpr/internal/vm"
	"github.com/kolotsey/goexpr/internal/value"
)

// Value re-exports the evaluator's dynamic value type so callers never need
// to import the internal package directly.
type Value = value.Value

// Kind constants and constructors re-exported from the internal value
// package so callers never need to import it directly.
const (
	Integer = value.Integer
	Real    = value.Real
	Boolean = value.Boolean
	String  = value.String
)

func Int(i int64) Value   { return value.Int(i) }
func Flt(r float64) Value { return value.Flt(r) }
func Bool(b bool) Value   { return value.Bool(b) }
func Str(s string) Value  { return value.Str(s) }

// Error re-exports the structured evaluator error (spec §7).
type Error = exprerr.Error

// ErrorKind re-exports the closed set of error kinds.
type ErrorKind = exprerr.Kind

// ParameterFunc resolves a free identifier encountered during Solve. Return
// ok=false to signal "not found", which Solve turns into InvalParam (spec
// §6's parameter-resolver contract).
type ParameterFunc func(userData any, name string) (Value, bool)

// FunctionOutcome is the three-way result of a FunctionFunc call, mirroring
// spec §6's `(ok, Value) | unknown | bad_call` function-resolver contract.
type FunctionOutcome int

const (
	FunctionOK FunctionOutcome = iota
	FunctionUnknown
	FunctionError
)

// FunctionFunc resolves a function call whose name misses the built-in
// registry. argv holds the already-evaluated, left-to-right argument list.
type FunctionFunc func(userData any, name string, argv []Value) (Value, FunctionOutcome)

// predefinedConstants are resolved before the parameter callback runs, case
// insensitively (spec §6). The lexer has already lowercased every
// identifier, so the map keys only need to cover the lowercase spellings.
var predefinedConstants = map[string]Value{
	"pi":    value.Flt(math.Pi),
	"e":     value.Flt(math.E),
	"true":  value.Bool(true),
	"yes":   value.Bool(true),
	"on":    value.Bool(true),
	"false": value.Bool(false),
	"no":    value.Bool(false),
	"off":   value.Bool(false),
}

// Expression is a compiled expression handle: the source text plus its RPN
// program, cached so repeated Solve calls skip lexing/parsing (spec §2). Go's
// garbage collector retires the spec's manual `free`/`free_value` calls —
// there is no Close method.
type Expression struct {
	source  string
	program []token.Token

	paramFn  ParameterFunc
	funcFn   FunctionFunc
	userData any
}

// Compile lexes, validates, and shunting-yards source into a reusable
// Expression handle.
func Compile(source string) (*Expression, error) {
	toks, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(toks); err != nil {
		return nil, err
	}
	rpn, err := shuntingyard.Compile(toks)
	if err != nil {
		return nil, err
	}
	return &Expression{source: source, program: rpn}, nil
}

// SetParameterHandler registers the callback used to resolve free
// identifiers not matched by a predefined constant.
func (e *Expression) SetParameterHandler(fn ParameterFunc) { e.paramFn = fn }

// SetFunctionHandler registers the callback used when a Function token's
// name misses the built-in registry.
func (e *Expression) SetFunctionHandler(fn FunctionFunc) { e.funcFn = fn }

// SetUserData attaches an opaque value later available to both callbacks.
func (e *Expression) SetUserData(v any) { e.userData = v }

// UserData returns the value previously passed to SetUserData.
func (e *Expression) UserData() any { return e.userData }

// Source returns the original expression text.
func (e *Expression) Source() string { return e.source }

// Equals reports textual equality of the two expressions' source strings
// (spec §6's `equals(a, b)` contract — a byte compare, not a semantic one).
func (e *Expression) Equals(other *Expression) bool {
	if other == nil {
		return false
	}
	return e.source == other.source
}

// Solve clones the cached RPN program, substitutes free identifiers via the
// parameter callback (predefined constants first), then runs the executor.
// ctx is checked before each parameter lookup: once it is done, Solve returns
// ctx.Err() without resolving further parameters. ctx is not passed to the
// callbacks and is not checked while the executor runs, so a callback that is
// already running, and any function callback, is not interrupted by it.
func (e *Expression) Solve(ctx context.Context) (Value, error) {
	prog := token.CloneProgram(e.program)
	if err := e.resolveParameters(ctx, prog); err != nil {
		return Value{}, err
	}

	m := &vm.Machine{UserData: e.userData}
	if e.funcFn != nil {
		m.FunctionHandler = e.adaptFunctionHandler()
	}
	return m.Run(prog)
}

// resolveParameters walks prog (recursing into IfBranch bodies) rewriting
// every Parameter token in place into a literal Value token.
func (e *Expression) resolveParameters(ctx context.Context, prog []token.Token) error {
	for i := range prog {
		t := &prog[i]
		if t.Kind == token.KindIfBranch {
			if err := e.resolveParameters(ctx, t.Body); err != nil {
				return err
			}
			continue
		}
		if t.Kind != token.KindParameter {
			continue
		}
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if v, ok := predefinedConstants[t.Name]; ok {
			rewriteLiteral(t, v)
			continue
		}

		if e.paramFn == nil {
			return exprerr.New(exprerr.InvalParam, t.Pos, "Unknown parameter '%s'", t.Name)
		}
		v, ok := e.paramFn(e.userData, t.Name)
		if !ok {
			return exprerr.New(exprerr.InvalParam, t.Pos, "Unknown parameter '%s'", t.Name)
		}
		rewriteLiteral(t, v)
	}
	return nil
}

// rewriteLiteral turns t into the literal-token equivalent of v, preserving
// t's original source position for error reporting.
func rewriteLiteral(t *token.Token, v Value) {
	pos := t.Pos
	switch v.Kind {
	case value.Integer:
		*t = token.Token{Pos: pos, Kind: token.KindInteger, Value: v}
	case value.Real:
		*t = token.Token{Pos: pos, Kind: token.KindReal, Value: v}
	case value.Boolean:
		*t = token.Token{Pos: pos, Kind: token.KindBoolean, Value: v}
	case value.String:
		*t = token.Token{Pos: pos, Kind: token.KindString, Value: v}
	}
}

func (e *Expression) adaptFunctionHandler() vm.FunctionHandler {
	return func(userData any, name string, argv []Value) (Value, error) {
		v, outcome := e.funcFn(userData, name, argv)
		switch outcome {
		case FunctionOK:
			return v, nil
		case FunctionUnknown:
			return Value{}, vm.ErrUnknownFunction
		default:
			return Value{}, exprerr.New(exprerr.UserFuncError, exprerr.NoPosition, "host function %q failed", name)
		}
	}
}

// ValueToString formats v following spec §6: reals print with 9 fractional
// digits then trim trailing zeros and a trailing '.'; integers print as
// signed decimal; booleans print True/False; strings print verbatim.
func ValueToString(v Value) string {
	switch v.Kind {
	case value.Integer:
		return strconv.FormatInt(v.I, 10)
	case value.Real:
		s := strconv.FormatFloat(v.R, 'f', 9, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
		return s
	case value.Boolean:
		if v.B {
			return "True"
		}
		return "False"
	case value.String:
		return v.S
	}
	return ""
}
