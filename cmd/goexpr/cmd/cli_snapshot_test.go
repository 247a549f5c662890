package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything it wrote, mirroring the teacher's buf.String() capture in
// fixture_test.go but for a CLI command rather than an interpreter run.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestEvalCommandSnapshot(t *testing.T) {
	out := captureStdout(t, func() {
		if err := runEval(nil, []string{"2+2"}); err != nil {
			t.Fatalf("runEval: %v", err)
		}
	})
	snaps.MatchSnapshot(t, out)
}

func TestBuiltinsCommandSnapshot(t *testing.T) {
	builtinsFilter = "strto"
	defer func() { builtinsFilter = "" }()

	out := captureStdout(t, func() {
		if err := runBuiltins(nil, nil); err != nil {
			t.Fatalf("runBuiltins: %v", err)
		}
	})
	snaps.MatchSnapshot(t, out)
}

func TestParseCommandSnapshot(t *testing.T) {
	out := captureStdout(t, func() {
		if err := runParse(nil, []string{"1+2*3"}); err != nil {
			t.Fatalf("runParse: %v", err)
		}
	})
	snaps.MatchSnapshot(t, out)
}
