package colors

import (
	"errors"
	"strings"
	"testing"
)

func TestStructuredDebugIsGatedByDebugMode(t *testing.T) {
	EnableStructuredLogging()
	defer EnableStructuredLogging()
	SetDebug(false)
	defer SetDebug(false)

	_, output := capture(t, func() {
		StructuredDebug("colors", "debug_disabled", "skipped", nil, "", nil)
	})
	if output != "" {
		t.Fatalf("expected no structured output when debug disabled, got %q", output)
	}

	SetDebug(true)
	_, output = capture(t, func() {
		StructuredDebug("colors", "debug_enabled", "written", nil, "", nil)
	})
	if !strings.Contains(output, `"level":"debug"`) {
		t.Fatalf("expected structured debug output, got %q", output)
	}
}

func TestStructuredErrorCarriesError(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	_, output := capture(t, func() {
		StructuredError("generate", "write", "failed", errors.New("disk full"), "run-1", map[string]interface{}{"file": "a.go"})
	})
	for _, want := range []string{`"error":"disk full"`, `"id":"run-1"`, `"file":"a.go"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q missing %s", output, want)
		}
	}
}

func TestStructuredLoggingCanBeDisabled(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)
	DisableStructuredLogging()
	defer EnableStructuredLogging()

	_, output := capture(t, func() {
		StructuredDebug("colors", "disabled", "skipped", nil, "", nil)
	})
	if output != "" {
		t.Fatalf("expected no structured output when disabled, got %q", output)
	}
}
