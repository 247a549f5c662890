package token

import (
	"testing"

	"github.com/kolotsey/goexpr/internal/value"
)

func TestCloneProgramIsDeep(t *testing.T) {
	prog := []Token{
		{Kind: KindIfBranch, Body: []Token{{Kind: KindInteger, Value: value.Int(1)}}},
	}
	clone := CloneProgram(prog)
	clone[0].Body[0].Value = value.Int(99)

	if prog[0].Body[0].Value.I != 1 {
		t.Fatalf("mutating clone affected original: %v", prog[0].Body[0].Value.I)
	}
}

func TestOpCodeIsUnary(t *testing.T) {
	for op, want := range map[OpCode]bool{
		OpUnaryPlus: true, OpUnaryMinus: true, OpBoolNot: true, OpBitNot: true,
		OpPlus: false, OpMul: false,
	} {
		if got := op.IsUnary(); got != want {
			t.Errorf("%v.IsUnary() = %v, want %v", op, got, want)
		}
	}
}
