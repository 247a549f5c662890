// Package operators implements the per-opcode Value×Value semantics the RPN
// executor dispatches to (spec §4.5), grounded on the teacher's switch-on-op
// evalXBinaryOp shape (CWBudde-go-dws internal/interp/evaluator/binary_ops.go)
// but collapsed onto goexpr's single dynamically-typed Value instead of a
// family of concrete runtime.*Value types.
package operators

import (
	"math"

	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/token"
	"github.com/kolotsey/goexpr/internal/value"
)

// Eval dispatches op against args (already popped off the executor's stack in
// left-to-right order) and returns the result or a domain error positioned at
// pos (the operator's own token position).
func Eval(op token.OpCode, args []value.Value, pos int) (value.Value, error) {
	switch op {
	case token.OpUnaryPlus:
		return evalUnaryPlus(args[0], pos)
	case token.OpUnaryMinus:
		return evalUnaryMinus(args[0], pos)
	case token.OpBoolNot:
		return evalBoolNot(args[0], pos)
	case token.OpBitNot:
		return evalBitNot(args[0], pos)
	case token.OpPlus:
		return evalPlus(args[0], args[1], pos)
	case token.OpMinus:
		return evalRealBinary(args[0], args[1], pos, func(a, b float64) float64 { return a - b })
	case token.OpMul:
		return evalRealBinary(args[0], args[1], pos, func(a, b float64) float64 { return a * b })
	case token.OpDiv:
		return evalDiv(args[0], args[1], pos)
	case token.OpMod:
		return evalMod(args[0], args[1], pos)
	case token.OpPow:
		return evalPow(args[0], args[1], pos)
	case token.OpShiftLeft:
		return evalIntBinary(args[0], args[1], pos, func(a, b int64) int64 { return a << uint(b&63) })
	case token.OpShiftRight:
		return evalIntBinary(args[0], args[1], pos, func(a, b int64) int64 { return a >> uint(b&63) })
	case token.OpBitAnd:
		return evalIntBinary(args[0], args[1], pos, func(a, b int64) int64 { return a & b })
	case token.OpBitOr:
		return evalIntBinary(args[0], args[1], pos, func(a, b int64) int64 { return a | b })
	case token.OpGt, token.OpLt, token.OpGe, token.OpLe,
		token.OpBoolEquals, token.OpNotEquals, token.OpAssignEquals:
		return evalCompare(op, args[0], args[1], pos)
	case token.OpBoolAnd:
		return evalBoolBinary(args[0], args[1], pos, func(a, b bool) bool { return a && b })
	case token.OpBoolOr:
		return evalBoolBinary(args[0], args[1], pos, func(a, b bool) bool { return a || b })
	}
	return value.Value{}, exprerr.New(exprerr.InvalOperator, pos, "unsupported operator %s", op)
}

// evalUnaryPlus preserves the Integer or Real variant of a numeric operand;
// Boolean promotes to Integer ±1/0; String parses via "is a number" coercion.
func evalUnaryPlus(a value.Value, pos int) (value.Value, error) {
	switch a.Kind {
	case value.Integer:
		return a, nil
	case value.Real:
		return a, nil
	case value.Boolean:
		if a.B {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	case value.String:
		r, err := a.ToReal(pos)
		if err != nil {
			return value.Value{}, err
		}
		return value.Flt(r), nil
	}
	return value.Value{}, exprerr.New(exprerr.NonNumeric, pos, "cannot apply unary + to %s", a.Kind)
}

func evalUnaryMinus(a value.Value, pos int) (value.Value, error) {
	switch a.Kind {
	case value.Integer:
		return value.Int(-a.I), nil
	case value.Real:
		return value.Flt(-a.R), nil
	case value.Boolean:
		if a.B {
			return value.Int(-1), nil
		}
		return value.Int(0), nil
	case value.String:
		r, err := a.ToReal(pos)
		if err != nil {
			return value.Value{}, err
		}
		return value.Flt(-r), nil
	}
	return value.Value{}, exprerr.New(exprerr.NonNumeric, pos, "cannot apply unary - to %s", a.Kind)
}

func evalBoolNot(a value.Value, pos int) (value.Value, error) {
	b, err := a.ToBoolean(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool(!b), nil
}

func evalBitNot(a value.Value, pos int) (value.Value, error) {
	if !a.IsStrictInteger() {
		return value.Value{}, exprerr.New(exprerr.NonInteger, pos, "operand of ~ must be an integer")
	}
	i, err := a.ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Int(^i), nil
}

// evalPlus falls back to string concatenation whenever either side is a
// String (spec §4.5), stringifying both operands first.
func evalPlus(a, b value.Value, pos int) (value.Value, error) {
	if a.Kind == value.String || b.Kind == value.String {
		return value.Str(a.ToStringValue() + b.ToStringValue()), nil
	}
	ar, err := a.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	br, err := b.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Flt(ar + br), nil
}

func evalRealBinary(a, b value.Value, pos int, f func(float64, float64) float64) (value.Value, error) {
	ar, err := a.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	br, err := b.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Flt(f(ar, br)), nil
}

func evalDiv(a, b value.Value, pos int) (value.Value, error) {
	ar, err := a.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	br, err := b.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	if br == 0 {
		return value.Value{}, exprerr.New(exprerr.DivByZero, pos, "division by zero")
	}
	return value.Flt(ar / br), nil
}

// evalMod requires both operands to be strict integers (spec §4.5/glossary).
func evalMod(a, b value.Value, pos int) (value.Value, error) {
	if !a.IsStrictInteger() || !b.IsStrictInteger() {
		return value.Value{}, exprerr.New(exprerr.NonInteger, pos, "operands of %% must be integers")
	}
	ai, err := a.ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	bi, err := b.ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	if bi == 0 {
		return value.Value{}, exprerr.New(exprerr.DivByZero, pos, "modulo by zero")
	}
	return value.Int(ai % bi), nil
}

// evalPow implements base^exp with the two documented domain errors: base=0
// with exp<=0 is a division by zero, base<0 with a non-integer exponent is
// complex (spec §4.5).
func evalPow(a, b value.Value, pos int) (value.Value, error) {
	base, err := a.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	exp, err := b.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	if base == 0 && exp <= 0 {
		return value.Value{}, exprerr.New(exprerr.DivByZero, pos, "0 raised to a non-positive power")
	}
	if base < 0 && !b.IsStrictInteger() {
		return value.Value{}, exprerr.New(exprerr.Complex, pos, "negative base %g raised to fractional power %g", base, exp)
	}
	return value.Flt(math.Pow(base, exp)), nil
}

func evalIntBinary(a, b value.Value, pos int, f func(int64, int64) int64) (value.Value, error) {
	if !a.IsStrictInteger() || !b.IsStrictInteger() {
		return value.Value{}, exprerr.New(exprerr.NonInteger, pos, "operands must be integers")
	}
	ai, err := a.ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	bi, err := b.ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Int(f(ai, bi)), nil
}

// evalCompare implements Gt/Lt/Ge/Le/BoolEquals/NotEquals/AssignEquals: a
// lexicographic byte compare when both sides are String, otherwise a
// numeric compare via Real coercion. AssignEquals behaves exactly like
// BoolEquals (spec §4.5).
func evalCompare(op token.OpCode, a, b value.Value, pos int) (value.Value, error) {
	if a.Kind == value.String && b.Kind == value.String {
		switch op {
		case token.OpGt:
			return value.Bool(a.S > b.S), nil
		case token.OpLt:
			return value.Bool(a.S < b.S), nil
		case token.OpGe:
			return value.Bool(a.S >= b.S), nil
		case token.OpLe:
			return value.Bool(a.S <= b.S), nil
		case token.OpBoolEquals, token.OpAssignEquals:
			return value.Bool(a.S == b.S), nil
		case token.OpNotEquals:
			return value.Bool(a.S != b.S), nil
		}
	}

	ar, err := a.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	br, err := b.ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	switch op {
	case token.OpGt:
		return value.Bool(ar > br), nil
	case token.OpLt:
		return value.Bool(ar < br), nil
	case token.OpGe:
		return value.Bool(ar >= br), nil
	case token.OpLe:
		return value.Bool(ar <= br), nil
	case token.OpBoolEquals, token.OpAssignEquals:
		return value.Bool(ar == br), nil
	case token.OpNotEquals:
		return value.Bool(ar != br), nil
	}
	return value.Value{}, exprerr.New(exprerr.InvalOperator, pos, "unsupported comparison operator %s", op)
}

// evalBoolBinary implements BoolAnd/BoolOr. Both operands are already
// evaluated by the time this runs — spec §4.5 explicitly preserves the
// source's non-short-circuiting behavior here; only `?:` short-circuits.
func evalBoolBinary(a, b value.Value, pos int, f func(bool, bool) bool) (value.Value, error) {
	ab, err := a.ToBoolean(pos)
	if err != nil {
		return value.Value{}, err
	}
	bb, err := b.ToBoolean(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool(f(ab, bb)), nil
}
