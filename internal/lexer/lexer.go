// Package lexer converts expression source text into a token list,
// recognizing multi-character operators, numeric literal bases, quoted
// strings with escapes, and disambiguating unary vs. binary +/- (spec §4.1).
package lexer

import (
	"strconv"
	"strings"

	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/token"
	"github.com/kolotsey/goexpr/internal/value"
)

// twoCharOps is tried before the one-char table, longest match first.
var twoCharOps = map[string]token.OpCode{
	">=": token.OpGe, "<=": token.OpLe,
	">>": token.OpShiftRight, "<<": token.OpShiftLeft,
	"==": token.OpBoolEquals, "!=": token.OpNotEquals,
	"&&": token.OpBoolAnd, "||": token.OpBoolOr,
}

var oneCharOps = map[byte]token.OpCode{
	'+': token.OpPlus, '-': token.OpMinus, '/': token.OpDiv, '%': token.OpMod,
	'*': token.OpMul, '^': token.OpPow, '~': token.OpBitNot,
	'?': token.OpIfThen, ':': token.OpElse,
	'>': token.OpGt, '<': token.OpLt, '=': token.OpAssignEquals,
	'!': token.OpBoolNot, '&': token.OpBitAnd, '|': token.OpBitOr,
}

// lexer is the scanning state. Unlike the teacher's Unicode-aware lexer,
// positions are plain byte offsets: the grammar is ASCII-only (spec §1
// Non-goals), so there is no rune/byte distinction to track.
type lexer struct {
	input string
	pos   int
}

// Lex tokenizes source, returning the flat token list or an InvalExpr error
// carrying the offending byte offset (spec §4.1).
func Lex(source string) ([]token.Token, error) {
	if strings.TrimSpace(source) == "" {
		return nil, exprerr.New(exprerr.InvalExpr, 0, "Empty expression")
	}

	l := &lexer{input: source}
	var out []token.Token

	for {
		l.skipBlanks()
		if l.pos >= len(l.input) {
			break
		}

		start := l.pos
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tok.Pos = start
		disambiguateUnary(&tok, out)
		out = append(out, tok)
	}

	return out, nil
}

func (l *lexer) skipBlanks() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) next() (token.Token, error) {
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return token.Token{Kind: token.KindLParen}, nil
	case ')':
		l.pos++
		return token.Token{Kind: token.KindRParen}, nil
	case ',':
		l.pos++
		return token.Token{Kind: token.KindComma}, nil
	case '\'', '"':
		return l.lexString(ch)
	}

	if op, ok := l.tryTwoCharOp(); ok {
		return token.Token{Kind: token.KindOperator, Op: op}, nil
	}
	if op, ok := oneCharOps[ch]; ok {
		l.pos++
		return token.Token{Kind: token.KindOperator, Op: op}, nil
	}

	if isDigit(ch) || (ch == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])) {
		return l.lexNumber()
	}

	if isIdentStart(ch) {
		return l.lexIdent()
	}

	return token.Token{}, exprerr.New(exprerr.InvalExpr, l.pos, "Invalid token %q", string(ch))
}

func (l *lexer) tryTwoCharOp() (token.OpCode, bool) {
	if l.pos+2 > len(l.input) {
		return 0, false
	}
	if op, ok := twoCharOps[l.input[l.pos:l.pos+2]]; ok {
		l.pos += 2
		return op, true
	}
	return 0, false
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '.'
}

// lexNumber recognizes 0x/0o/0b integer prefixes and decimal integer/real
// literals with an optional, mandatory-signed exponent (spec §4.1 rule 4).
func (l *lexer) lexNumber() (token.Token, error) {
	start := l.pos

	if l.input[l.pos] == '0' && l.pos+1 < len(l.input) {
		switch l.input[l.pos+1] {
		case 'x', 'X':
			return l.lexRadixInt(start, 16, isHexDigit)
		case 'o', 'O':
			return l.lexRadixInt(start, 8, isOctalDigit)
		case 'b', 'B':
			return l.lexRadixInt(start, 2, isBinaryDigit)
		}
	}

	isReal := false
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		isReal = true
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.pos++
			digitsStart := l.pos
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
			if l.pos == digitsStart {
				l.pos = save
			} else {
				isReal = true
			}
		} else {
			// exponent sign is mandatory; 'e' without a sign is not part of
			// the number (spec §4.1 rule 4).
			l.pos = save
		}
	}

	text := l.input[start:l.pos]

	if isReal {
		r, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, exprerr.New(exprerr.InvalExpr, start, "Invalid numeric literal %q", text)
		}
		return token.Token{Kind: token.KindReal, Value: value.Flt(r)}, nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{}, exprerr.New(exprerr.InvalExpr, start, "Invalid numeric literal %q", text)
	}
	return token.Token{Kind: token.KindInteger, Value: value.Int(i)}, nil
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
func isOctalDigit(ch byte) bool  { return ch >= '0' && ch <= '7' }
func isBinaryDigit(ch byte) bool { return ch == '0' || ch == '1' }

func (l *lexer) lexRadixInt(start, base int, digitOk func(byte) bool) (token.Token, error) {
	l.pos += 2 // skip "0x"/"0o"/"0b"
	digitsStart := l.pos
	for l.pos < len(l.input) && digitOk(l.input[l.pos]) {
		l.pos++
	}
	if l.pos == digitsStart {
		return token.Token{}, exprerr.New(exprerr.InvalExpr, start, "Invalid numeric literal %q", l.input[start:l.pos])
	}
	i, err := strconv.ParseInt(l.input[digitsStart:l.pos], base, 64)
	if err != nil {
		return token.Token{}, exprerr.New(exprerr.InvalExpr, start, "Invalid numeric literal %q", l.input[start:l.pos])
	}
	return token.Token{Kind: token.KindInteger, Value: value.Int(i)}, nil
}

// lexIdent recognizes [A-Za-z_][A-Za-z0-9_.]*, lower-cased in place, and
// emits it as a Parameter (the validator later promotes Parameter→Function
// when immediately followed by '(').
func (l *lexer) lexIdent() (token.Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isIdentCont(l.input[l.pos]) {
		l.pos++
	}
	name := strings.ToLower(l.input[start:l.pos])
	return token.Token{Kind: token.KindParameter, Name: name}, nil
}

// lexString recognizes '...'/"..." with backslash escapes \n \r \t \\ \' \".
// An unknown escape advances past the backslash leaving the next char
// unchanged (spec §4.1 rule 6).
func (l *lexer) lexString(quote byte) (token.Token, error) {
	start := l.pos
	l.pos++ // skip opening quote

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return token.Token{}, exprerr.New(exprerr.InvalExpr, start, "Missing terminating quote character")
		}
		ch := l.input[l.pos]
		if ch == quote {
			l.pos++
			return token.Token{Kind: token.KindString, Value: value.Str(sb.String())}, nil
		}
		if ch == '\\' && l.pos+1 < len(l.input) {
			next := l.input[l.pos+1]
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '\'':
				sb.WriteByte('\'')
			case '"':
				sb.WriteByte('"')
			default:
				sb.WriteByte(next)
			}
			l.pos += 2
			continue
		}
		sb.WriteByte(ch)
		l.pos++
	}
}

// disambiguateUnary rewrites a just-lexed +/- operator to its unary OpCode
// when the previous emitted token is absent, a Comma, an LParen, or any
// Operator (spec §4.1's unary disambiguation rule).
func disambiguateUnary(tok *token.Token, prev []token.Token) {
	if tok.Kind != token.KindOperator || (tok.Op != token.OpPlus && tok.Op != token.OpMinus) {
		return
	}

	isBoundary := len(prev) == 0
	if !isBoundary {
		last := prev[len(prev)-1]
		isBoundary = last.Kind == token.KindComma || last.Kind == token.KindLParen || last.Kind == token.KindOperator
	}
	if !isBoundary {
		return
	}

	if tok.Op == token.OpPlus {
		tok.Op = token.OpUnaryPlus
	} else {
		tok.Op = token.OpUnaryMinus
	}
}
