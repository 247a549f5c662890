// Package validator performs a single structural pass over the lexed token
// list: promoting Parameter→Function and rejecting the grammar violations
// enumerated in spec §4.2, before the shunting-yard stage runs.
package validator

import (
	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/token"
)

// Validate promotes each Parameter immediately followed by LParen to
// Function (mutating toks in place, as the source lexer would) and checks
// the adjacency rules of spec §4.2, then parenthesis balance. It returns the
// first violation found.
func Validate(toks []token.Token) error {
	var balanceErr error
	var open []int // positions of the currently unclosed LParens
	for i := range toks {
		if toks[i].Kind == token.KindParameter && i+1 < len(toks) && toks[i+1].Kind == token.KindLParen {
			toks[i].Kind = token.KindFunction
		}
		switch toks[i].Kind {
		case token.KindLParen:
			open = append(open, toks[i].Pos)
		case token.KindRParen:
			if len(open) == 0 && balanceErr == nil {
				balanceErr = exprerr.New(exprerr.InvalExpr, toks[i].Pos, "Mismatched parenthesis")
			} else if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
	if len(open) > 0 && balanceErr == nil {
		balanceErr = exprerr.New(exprerr.InvalExpr, open[len(open)-1], "Mismatched parenthesis")
	}

	for i, t := range toks {
		var prev, next *token.Token
		if i > 0 {
			prev = &toks[i-1]
		}
		if i+1 < len(toks) {
			next = &toks[i+1]
		}

		switch t.Kind {
		case token.KindLParen:
			if !validLParenPredecessor(prev) {
				return exprerr.New(exprerr.InvalExpr, t.Pos, "Unexpected left parenthesis")
			}
			if next != nil {
				if next.Kind == token.KindComma {
					return exprerr.New(exprerr.InvalExpr, next.Pos, "Parenthesis without operand on the right")
				}
				if next.Kind == token.KindRParen && (prev == nil || prev.Kind != token.KindFunction) {
					return exprerr.New(exprerr.InvalExpr, next.Pos, "Parenthesis without operand on the right")
				}
			}

		case token.KindRParen:
			if prev != nil && prev.Kind == token.KindComma {
				return exprerr.New(exprerr.InvalExpr, t.Pos, "Unexpected right parenthesis")
			}
			if next != nil && !validRParenSuccessor(next) {
				return exprerr.New(exprerr.InvalExpr, next.Pos, "Parenthesis without operator on the right")
			}

		case token.KindInteger, token.KindReal, token.KindBoolean, token.KindString, token.KindParameter:
			if !validOperandPredecessor(prev) {
				return exprerr.New(exprerr.InvalExpr, t.Pos, "Unexpected operand")
			}
			if next != nil && !validOperandSuccessor(next) {
				return exprerr.New(exprerr.InvalExpr, next.Pos, "Operand without operator on the right")
			}

		case token.KindFunction:
			if !validOperandPredecessor(prev) {
				return exprerr.New(exprerr.InvalExpr, t.Pos, "Unexpected function")
			}

		case token.KindOperator:
			if !t.Op.IsUnary() {
				if !validBinaryOperatorPredecessor(prev) {
					return exprerr.New(exprerr.InvalExpr, t.Pos, "Unexpected operator")
				}
			}
			if next == nil || next.Kind == token.KindRParen || next.Kind == token.KindComma {
				return exprerr.New(exprerr.InvalExpr, t.Pos, "Operator without right operand")
			}
		}
	}

	return balanceErr
}

func validLParenPredecessor(prev *token.Token) bool {
	if prev == nil {
		return true
	}
	switch prev.Kind {
	case token.KindLParen, token.KindComma, token.KindOperator, token.KindFunction:
		return true
	}
	return false
}

func validRParenSuccessor(next *token.Token) bool {
	switch next.Kind {
	case token.KindRParen, token.KindComma, token.KindOperator:
		return true
	}
	return false
}

func validOperandPredecessor(prev *token.Token) bool {
	if prev == nil {
		return true
	}
	switch prev.Kind {
	case token.KindOperator, token.KindLParen, token.KindComma:
		return true
	}
	return false
}

func validOperandSuccessor(next *token.Token) bool {
	switch next.Kind {
	case token.KindOperator, token.KindRParen, token.KindComma:
		return true
	}
	return false
}

func validBinaryOperatorPredecessor(prev *token.Token) bool {
	if prev == nil {
		return false
	}
	switch prev.Kind {
	case token.KindLParen, token.KindComma, token.KindOperator:
		return false
	}
	return true
}
