package colors

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func capture(t *testing.T, fn func()) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(nil, nil)
	fn()
	return out.String(), errOut.String()
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(msg string, _ ...any) { r.lines = append(r.lines, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, _ ...any)  { r.lines = append(r.lines, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)  { r.lines = append(r.lines, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, _ ...any) { r.lines = append(r.lines, "error:"+msg) }

func TestError(t *testing.T) {
	out, errOut := capture(t, func() { Error("something", "went wrong") })
	if out != "" {
		t.Errorf("Error wrote to stdout: %q", out)
	}
	if !strings.Contains(errOut, "Error:") {
		t.Errorf("Error output missing 'Error:' prefix: %q", errOut)
	}
	if !strings.Contains(errOut, "something went wrong") {
		t.Errorf("Error output missing message: %q", errOut)
	}
}

func TestSuccess(t *testing.T) {
	out, _ := capture(t, func() { Success("operation completed") })
	if !strings.Contains(out, checkmark) {
		t.Errorf("Success output missing checkmark: %q", out)
	}
	if !strings.Contains(out, "operation completed") {
		t.Errorf("Success output missing message: %q", out)
	}
}

func TestWarning(t *testing.T) {
	_, errOut := capture(t, func() { Warning("this is a warning") })
	if !strings.Contains(errOut, "Warning:") || !strings.Contains(errOut, "this is a warning") {
		t.Errorf("unexpected warning output: %q", errOut)
	}
}

func TestInfoAndLogInfo(t *testing.T) {
	out, errOut := capture(t, func() {
		Info("to stdout")
		LogInfo("to stderr")
	})
	if !strings.Contains(out, "to stdout") || strings.Contains(out, "to stderr") {
		t.Errorf("unexpected stdout: %q", out)
	}
	if !strings.Contains(errOut, "to stderr") {
		t.Errorf("unexpected stderr: %q", errOut)
	}
}

func TestDebugIsGated(t *testing.T) {
	SetDebug(false)
	defer SetDebug(false)

	_, errOut := capture(t, func() { Debug("hidden") })
	if errOut != "" {
		t.Errorf("expected no debug output, got %q", errOut)
	}

	SetDebug(true)
	if !DebugEnabled() {
		t.Fatal("DebugEnabled should report true")
	}
	_, errOut = capture(t, func() { Debug("shown") })
	if !strings.Contains(errOut, "Debug:") || !strings.Contains(errOut, "shown") {
		t.Errorf("unexpected debug output: %q", errOut)
	}
}

func TestLoggerMirrorsConsole(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	capture(t, func() {
		Error("e")
		Warning("w")
		Success("s")
		Info("i")
	})

	want := []string{"error:e", "warn:w", "info:s", "info:i"}
	if strings.Join(rec.lines, ",") != strings.Join(want, ",") {
		t.Errorf("mirrored lines = %v, want %v", rec.lines, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestFailedWriteFallsBack(t *testing.T) {
	var errOut bytes.Buffer
	SetOutput(failingWriter{}, &errOut)
	defer SetOutput(nil, nil)

	Success("lost")
	if !strings.Contains(errOut.String(), "failed to print success message") {
		t.Errorf("expected fallback warning, got %q", errOut.String())
	}
}
