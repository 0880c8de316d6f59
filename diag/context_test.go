package diag_test

import (
	"io"
	"os"
	"strings"
	"testing"

	"dwislpy/common"
	"dwislpy/diag"
)

// captureStderr redirects os.Stderr for the duration of fn and returns
// whatever was written to it.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = orig

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured stderr: %v", err)
	}
	return string(out)
}

func TestErrorAtDefaultLogLevelWritesBareLineToStderr(t *testing.T) {
	ctx := diag.NewContext("prog.dwi", diag.LogLevelError)
	locn := common.Locn{Source: "prog.dwi", Line: 3, Col: 5}

	out := captureStderr(t, func() {
		ctx.Error(locn, "unexpected token")
	})

	want := "prog.dwi:3:5: unexpected token\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestSilentLogLevelWritesNothing(t *testing.T) {
	ctx := diag.NewContext("prog.dwi", diag.LogLevelSilent)
	locn := common.Locn{Source: "prog.dwi", Line: 1, Col: 1}

	out := captureStderr(t, func() {
		ctx.Error(locn, "should not be printed")
	})

	if out != "" {
		t.Errorf("expected no output at LogLevelSilent, got %q", out)
	}
}

func TestVerboseLogLevelStillWritesToStderr(t *testing.T) {
	ctx := diag.NewContext("prog.dwi", diag.LogLevelVerbose)
	locn := common.Locn{Source: "prog.dwi", Line: 2, Col: 1}

	out := captureStderr(t, func() {
		ctx.Error(locn, "boom")
	})

	if !strings.Contains(out, "boom") {
		t.Errorf("expected decorated banner to still contain the message, got %q", out)
	}
	if !strings.Contains(out, "prog.dwi:2:1") {
		t.Errorf("expected decorated banner to still name the location, got %q", out)
	}
}

func TestErrorIncrementsErrorCount(t *testing.T) {
	ctx := diag.NewContext("prog.dwi", diag.LogLevelSilent)
	if !ctx.ShouldProceed() {
		t.Fatal("fresh context should allow proceeding")
	}
	captureStderr(t, func() {
		ctx.Error(common.Locn{Source: "prog.dwi"}, "oops")
	})
	if ctx.ShouldProceed() {
		t.Fatal("context should not allow proceeding after an error")
	}
}
