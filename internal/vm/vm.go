// Package vm implements the RPN executor: a stack machine that consumes the
// shunting-yard's postfix token list and dispatches each token to the
// operator evaluator, the built-in function registry, or a recursive
// sub-program for the ternary's selected branch (spec §4.4). Grounded on the
// teacher's bytecode VM shape — push/pop helpers plus a switch-on-opcode
// loop (CWBudde-go-dws internal/bytecode/vm_exec.go, vm_stack.go) — adapted
// from a frame-based bytecode interpreter to a single flat RPN stack.
package vm

import (
	"math"

	"github.com/kolotsey/goexpr/internal/builtins"
	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/operators"
	"github.com/kolotsey/goexpr/internal/token"
	"github.com/kolotsey/goexpr/internal/value"
)

// FunctionHandler is the host fallback invoked when a Function token's name
// misses the built-in registry (spec §6's function-resolver contract).
type FunctionHandler func(userData any, name string, argv []value.Value) (value.Value, error)

// ErrUnknownFunction is the sentinel a FunctionHandler returns to signal
// that it, too, doesn't recognize the name — translated to InvalFunc.
var ErrUnknownFunction = exprerr.New(exprerr.InvalFunc, exprerr.NoPosition, "unknown function")

// Machine holds the state threaded through one Run call: the host's function
// callback and its opaque user-data pointer.
type Machine struct {
	FunctionHandler FunctionHandler
	UserData        any
}

// stackItem is either an ordinary Value or an unevaluated IfBranch body
// awaiting its IfCondition dispatch. Only IfCondition ever looks at body; no
// other opcode pops a branch item off the stack.
type stackItem struct {
	val  value.Value
	body []token.Token
}

// Run executes prog (RPN tokens, free of Parameter tokens — those must
// already have been substituted by the caller) and returns the single
// resulting value, or an error at the offending token's position.
func (m *Machine) Run(prog []token.Token) (value.Value, error) {
	var stack []stackItem

	push := func(v value.Value) { stack = append(stack, stackItem{val: v}) }

	popValue := func(pos int) (value.Value, error) {
		if len(stack) == 0 {
			return value.Value{}, exprerr.New(exprerr.InvalExpr, pos, "too many operators")
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v.val, nil
	}

	for _, t := range prog {
		switch t.Kind {
		case token.KindInteger, token.KindReal, token.KindBoolean, token.KindString:
			push(t.Value)

		case token.KindIfBranch:
			stack = append(stack, stackItem{body: t.Body})

		case token.KindOperator:
			arity := 2
			if t.Op.IsUnary() {
				arity = 1
			}
			if len(stack) < arity {
				return value.Value{}, exprerr.New(exprerr.InvalExpr, t.Pos, "too many operators")
			}
			args := make([]value.Value, arity)
			for i := 0; i < arity; i++ {
				args[i] = stack[len(stack)-arity+i].val
			}
			stack = stack[:len(stack)-arity]

			result, err := operators.Eval(t.Op, args, t.Pos)
			if err != nil {
				return value.Value{}, err
			}
			push(narrow(result))

		case token.KindIfCondition:
			if len(stack) < 3 {
				return value.Value{}, exprerr.New(exprerr.InvalExpr, t.Pos, "too many operators")
			}
			elseBranch := stack[len(stack)-1]
			thenBranch := stack[len(stack)-2]
			condItem := stack[len(stack)-3]
			stack = stack[:len(stack)-3]

			b, err := condItem.val.ToBoolean(t.Pos)
			if err != nil {
				return value.Value{}, err
			}

			branchProg := elseBranch.body
			if b {
				branchProg = thenBranch.body
			}
			result, err := m.Run(branchProg)
			if err != nil {
				return value.Value{}, err
			}
			push(narrow(result))

		case token.KindFunction:
			argcVal, err := popValue(t.Pos)
			if err != nil {
				return value.Value{}, err
			}
			argc := int(argcVal.I)
			if len(stack) < argc {
				return value.Value{}, exprerr.New(exprerr.InvalExpr, t.Pos, "too many operators")
			}
			argv := make([]value.Value, argc)
			for i := 0; i < argc; i++ {
				argv[i] = stack[len(stack)-argc+i].val
			}
			stack = stack[:len(stack)-argc]

			result, err := m.call(t.Name, argv, t.Pos)
			if err != nil {
				return value.Value{}, err
			}
			push(narrow(result))

		default:
			return value.Value{}, exprerr.New(exprerr.InvalExpr, t.Pos, "Invalid or unsupported token")
		}
	}

	switch len(stack) {
	case 0:
		return value.Value{}, exprerr.New(exprerr.InvalExpr, exprerr.NoPosition, "too many operators")
	case 1:
		return stack[0].val, nil
	default:
		return value.Value{}, exprerr.New(exprerr.InvalExpr, exprerr.NoPosition, "too many operands")
	}
}

func (m *Machine) call(name string, argv []value.Value, pos int) (value.Value, error) {
	if fn, ok := builtins.Lookup(name); ok {
		return fn(argv, pos)
	}
	if m.FunctionHandler == nil {
		return value.Value{}, exprerr.New(exprerr.InvalFunc, pos, "unknown function %q", name)
	}
	result, err := m.FunctionHandler(m.UserData, name, argv)
	if err != nil {
		if err == ErrUnknownFunction {
			return value.Value{}, exprerr.New(exprerr.InvalFunc, pos, "unknown function %q", name)
		}
		return value.Value{}, exprerr.New(exprerr.UserFuncError, pos, "%s", err)
	}
	return result, nil
}

// narrow implements spec §4.4's real-to-integer narrowing rule: a Real
// result equal to its own rounding and within int64 range becomes an
// Integer. Zero (including negative zero) always narrows to Integer(0),
// matching eval.c:903's treatment of a zero result as exact.
func narrow(v value.Value) value.Value {
	if v.Kind != value.Real {
		return v
	}
	if v.R == 0 {
		return value.Int(0)
	}
	if math.IsNaN(v.R) || math.IsInf(v.R, 0) {
		return v
	}
	if v.R < math.MinInt64 || v.R > math.MaxInt64 {
		return v
	}
	if v.R == math.Round(v.R) {
		return value.Int(int64(v.R))
	}
	return v
}
