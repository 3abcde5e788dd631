package analytics

import (
	"bytes"
	"strings"
	"testing"

	"skilld/pkg/logging"
)

func TestLogEmitter_NonOKEventsAreVisible(t *testing.T) {
	var buf bytes.Buffer
	logging.InitForCLI(logging.LevelInfo, &buf)

	LogEmitter{}.Emit(Event{
		Status:     StatusTimeout,
		Scope:      ScopeSkillExecutor,
		Skill:      "email.send",
		Handler:    "Handlers.Email.Send",
		DurationMS: 50,
		Diagnostic: "no result within 50ms",
	})

	out := buf.String()
	if !strings.Contains(out, "email.send") || !strings.Contains(out, "timeout") {
		t.Errorf("expected timeout event in log output, got %q", out)
	}
}

func TestLogEmitter_OKEventsAreDebugOnly(t *testing.T) {
	var buf bytes.Buffer
	logging.InitForCLI(logging.LevelInfo, &buf)

	LogEmitter{}.Emit(Event{Status: StatusOK, Skill: "email.send"})

	if out := buf.String(); strings.Contains(out, "email.send") {
		t.Errorf("ok events should be filtered at info level, got %q", out)
	}
}

func TestNopEmitter(t *testing.T) {
	// Must simply not panic.
	NopEmitter{}.Emit(Event{Status: StatusCrash})
}
