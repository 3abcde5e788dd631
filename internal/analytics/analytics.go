// Package analytics defines the fire-and-forget execution analytics
// collaborator. The dispatcher reports one event per dispatch branch;
// emission must never fail or block a dispatch.
package analytics

import "skilld/pkg/logging"

// ScopeSkillExecutor tags events originating from the execution dispatcher.
const ScopeSkillExecutor = "skill_executor"

// Event statuses reported by the dispatcher.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusTimeout = "timeout"
	StatusCrash   = "crash"
)

// Event is one execution record.
type Event struct {
	Status         string
	Scope          string
	Skill          string
	Handler        string
	ConversationID string
	UserID         string
	DurationMS     int64

	// Diagnostic carries the failure reason for non-ok branches. It is
	// meant for logs and dashboards, never for end users verbatim.
	Diagnostic string

	Metadata map[string]interface{}
}

// Emitter accepts execution events. Implementations must return quickly
// and swallow their own failures.
type Emitter interface {
	Emit(event Event)
}

// NopEmitter discards all events.
type NopEmitter struct{}

func (NopEmitter) Emit(Event) {}

// LogEmitter writes events to the structured log. Useful as a default and
// in development; production deployments plug in their own collector.
type LogEmitter struct{}

func (LogEmitter) Emit(event Event) {
	if event.Status == StatusOK {
		logging.Debug("Analytics", "skill=%s handler=%s status=%s duration_ms=%d", event.Skill, event.Handler, event.Status, event.DurationMS)
		return
	}
	logging.Info("Analytics", "skill=%s handler=%s status=%s duration_ms=%d diagnostic=%s", event.Skill, event.Handler, event.Status, event.DurationMS, event.Diagnostic)
}
