package exprerr

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name        string
		err         *Error
		source      string
		wantContain []string
	}{
		{
			name:   "positioned error",
			err:    New(InvalExpr, 8, "Operator without right operand"),
			source: "1 + (2*)",
			wantContain: []string{
				"Error at column 9:",
				"1 + (2*)",
				"^",
				"Operator without right operand",
			},
		},
		{
			name:   "context-free error",
			err:    New(NoMem, NoPosition, "out of memory"),
			source: "",
			wantContain: []string{
				"Error: out of memory",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.err, tt.source, false)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Format() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestErrorMessageTruncation(t *testing.T) {
	long := strings.Repeat("x", MaxMessageLen+500)
	err := New(InvalArg, 0, "%s", long)
	if len(err.Message) != MaxMessageLen {
		t.Fatalf("Message len = %d, want %d", len(err.Message), MaxMessageLen)
	}
}

func TestErrorInterface(t *testing.T) {
	var err error = New(DivByZero, 3, "division by zero")
	if !strings.Contains(err.Error(), "DivByZero") {
		t.Errorf("Error() = %q, want to contain DivByZero", err.Error())
	}
}
