// Package shuntingyard converts a validated infix token list into Reverse
// Polish form: Dijkstra's classical algorithm extended with variadic
// argument counting (the "were-values" trick, spec §4.3) and a recursive
// compiler for the `cond ? a : b` ternary, whose branches become independent
// nested RPN sub-programs rather than ordinary operators.
package shuntingyard

import (
	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/token"
	"github.com/kolotsey/goexpr/internal/value"
)

// precedence assigns a binding strength to each operator; higher binds
// tighter (spec §4.3's table).
var precedence = map[token.OpCode]int{
	token.OpUnaryMinus: 20, token.OpUnaryPlus: 20,
	token.OpPow:      19,
	token.OpBoolNot:  18, token.OpBitNot: 18,
	token.OpMul: 17, token.OpDiv: 17, token.OpMod: 17,
	token.OpPlus: 16, token.OpMinus: 16,
	token.OpShiftLeft: 15, token.OpShiftRight: 15,
	token.OpGt: 14, token.OpLt: 14, token.OpGe: 14, token.OpLe: 14,
	token.OpBoolEquals: 13, token.OpNotEquals: 13, token.OpAssignEquals: 13,
	token.OpBitAnd: 12,
	token.OpBitOr:  11,
	token.OpBoolAnd: 10,
	token.OpBoolOr:  9,
	token.OpIfThen:  8,
}

// rightAssociative is the set of right-associative operators; everything
// else is left-associative (spec §4.3).
var rightAssociative = map[token.OpCode]bool{
	token.OpUnaryMinus: true, token.OpUnaryPlus: true,
	token.OpPow: true, token.OpBoolNot: true, token.OpBitNot: true,
	token.OpIfThen: true, token.OpElse: true, token.OpAssignEquals: true,
}

// stackKind tags an operator-stack entry.
type stackKind int

const (
	entryOperator stackKind = iota
	entryLParen
	entryFunction
)

type stackEntry struct {
	kind stackKind
	op   token.OpCode
	name string
	pos  int
}

// ternaryCompileMode selects how a recursive Compile call should terminate
// (spec §4.3 "Ternary compilation", "Mode semantics").
type ternaryCompileMode int

const (
	modeTopLevel  ternaryCompileMode = 0
	modeThen      ternaryCompileMode = 1
	modeElse      ternaryCompileMode = 2
)

// Compile converts the validated infix token list toks into an RPN program.
func Compile(toks []token.Token) ([]token.Token, error) {
	c := &compiler{toks: toks}
	out, err := c.run(modeTopLevel)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, exprerr.New(exprerr.InvalExpr, 0, "Empty expression")
	}
	return out, nil
}

// compiler holds the shared input cursor; each recursive ternary-branch call
// gets its own fresh operator stack, output queue, and argc/had-value
// stacks, but shares the cursor so the branches consume disjoint slices of
// the same token stream (spec §4.3).
type compiler struct {
	toks []token.Token
	pos  int
}

func (c *compiler) run(mode ternaryCompileMode) ([]token.Token, error) {
	var output []token.Token
	var opStack []stackEntry
	var argcStack []int
	hadValue := []bool{false}

	markValue := func() {
		hadValue[len(hadValue)-1] = true
	}

	canPop := func(newOp token.OpCode) bool {
		if len(opStack) == 0 {
			return false
		}
		top := opStack[len(opStack)-1]
		if top.kind != entryOperator {
			return false
		}
		topPrec, newPrec := precedence[top.op], precedence[newOp]
		if topPrec > newPrec {
			return true
		}
		return topPrec == newPrec && !rightAssociative[newOp]
	}

	drainToOutput := func() {
		top := opStack[len(opStack)-1]
		output = append(output, token.Token{Kind: token.KindOperator, Op: top.op, Pos: top.pos})
		opStack = opStack[:len(opStack)-1]
	}

loop:
	for {
		if c.pos >= len(c.toks) {
			if mode == modeThen {
				return nil, exprerr.New(exprerr.InvalExpr, lastPos(c.toks), "Expected ':' to close ternary expression")
			}
			break loop
		}

		t := c.toks[c.pos]

		switch t.Kind {
		case token.KindInteger, token.KindReal, token.KindBoolean, token.KindString, token.KindParameter:
			output = append(output, t)
			markValue()
			c.pos++

		case token.KindFunction:
			markValue()
			opStack = append(opStack, stackEntry{kind: entryFunction, name: t.Name, pos: t.Pos})
			argcStack = append(argcStack, 0)
			hadValue = append(hadValue, false)
			c.pos++

		case token.KindLParen:
			// A LParen immediately following a Function entry is that call's
			// own argument-list paren: the Function step already pushed its
			// had-value frame, so this LParen doesn't get a second one (spec
			// §4.3: "one frame per LParen (function-introduced or
			// grouping)" — function-introduced parens share the function's
			// frame rather than adding their own).
			isCallParen := len(opStack) > 0 && opStack[len(opStack)-1].kind == entryFunction
			opStack = append(opStack, stackEntry{kind: entryLParen, pos: t.Pos})
			if !isCallParen {
				hadValue = append(hadValue, false)
			}
			c.pos++

		case token.KindRParen:
			for len(opStack) > 0 && opStack[len(opStack)-1].kind != entryLParen {
				drainToOutput()
			}
			if len(opStack) == 0 {
				if mode == modeElse {
					break loop
				}
				return nil, exprerr.New(exprerr.InvalExpr, t.Pos, "Mismatched parenthesis")
			}
			opStack = opStack[:len(opStack)-1] // discard the LParen
			hTop := hadValue[len(hadValue)-1]
			hadValue = hadValue[:len(hadValue)-1]
			if len(opStack) > 0 && opStack[len(opStack)-1].kind == entryFunction {
				fn := opStack[len(opStack)-1]
				opStack = opStack[:len(opStack)-1]
				n := argcStack[len(argcStack)-1]
				argcStack = argcStack[:len(argcStack)-1]
				if hTop {
					n++
				}
				output = append(output, token.Token{Kind: token.KindInteger, Value: value.Int(int64(n))})
				output = append(output, token.Token{Kind: token.KindFunction, Name: fn.name, Pos: fn.pos})
			} else if hTop {
				// A grouping (non-call) paren's value isn't dropped on the
				// floor: it still counts as a value in whichever frame now
				// encloses it — an outer call's argument list, an outer
				// grouping paren, or the top level.
				markValue()
			}
			c.pos++

		case token.KindComma:
			for len(opStack) > 0 && opStack[len(opStack)-1].kind != entryLParen {
				drainToOutput()
			}
			if len(opStack) == 0 || len(argcStack) == 0 {
				return nil, exprerr.New(exprerr.InvalExpr, t.Pos, "Unexpected comma")
			}
			if hadValue[len(hadValue)-1] {
				argcStack[len(argcStack)-1]++
			}
			hadValue[len(hadValue)-1] = false
			c.pos++

		case token.KindOperator:
			if t.Op == token.OpElse {
				switch mode {
				case modeThen:
					c.pos++
					break loop
				case modeElse:
					break loop
				default:
					return nil, exprerr.New(exprerr.InvalExpr, t.Pos, "Unexpected colon")
				}
			}

			if t.Op == token.OpIfThen {
				for canPop(token.OpIfThen) {
					drainToOutput()
				}
				c.pos++ // consume '?'

				thenRPN, err := c.run(modeThen)
				if err != nil {
					return nil, err
				}
				elseRPN, err := c.run(modeElse)
				if err != nil {
					return nil, err
				}

				output = append(output, token.Token{Kind: token.KindIfBranch, Body: thenRPN})
				output = append(output, token.Token{Kind: token.KindIfBranch, Body: elseRPN})
				output = append(output, token.Token{Kind: token.KindIfCondition, Pos: t.Pos})
				markValue()
				continue loop
			}

			for canPop(t.Op) {
				drainToOutput()
			}
			opStack = append(opStack, stackEntry{kind: entryOperator, op: t.Op, pos: t.Pos})
			c.pos++

		default:
			return nil, exprerr.New(exprerr.InvalExpr, t.Pos, "Invalid or unsupported token")
		}
	}

	for len(opStack) > 0 {
		top := opStack[len(opStack)-1]
		if top.kind != entryOperator {
			return nil, exprerr.New(exprerr.InvalExpr, top.pos, "Mismatched parenthesis")
		}
		drainToOutput()
	}

	return output, nil
}

func lastPos(toks []token.Token) int {
	if len(toks) == 0 {
		return exprerr.NoPosition
	}
	return toks[len(toks)-1].Pos
}
