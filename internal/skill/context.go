package skill

import "github.com/google/uuid"

// Result statuses reported by handlers.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// CallContext carries per-invocation identity and environment into a
// handler. It is built once per dispatch and must not be mutated for the
// duration of the call.
type CallContext struct {
	// ConversationID identifies the conversation the invocation belongs to
	ConversationID string

	// ExecutionID uniquely identifies this invocation
	ExecutionID string

	// UserID identifies the user on whose behalf the handler runs
	UserID string

	// Channel is the origin channel of the request (e.g. "web", "slack")
	Channel string

	// Timezone is the user's IANA timezone
	Timezone string

	// Workspace is a scratch directory the handler may write to
	Workspace string

	// Integrations maps integration names to ready-to-use clients
	Integrations map[string]interface{}

	// Metadata carries free-form per-call values
	Metadata map[string]interface{}
}

// NewCallContext builds a CallContext with a fresh unique execution id.
func NewCallContext(conversationID, userID, channel string) *CallContext {
	return &CallContext{
		ConversationID: conversationID,
		ExecutionID:    uuid.NewString(),
		UserID:         userID,
		Channel:        channel,
		Integrations:   make(map[string]interface{}),
		Metadata:       make(map[string]interface{}),
	}
}

// Result is the outcome a handler reports for one invocation.
type Result struct {
	// Status is StatusOK or StatusError. A StatusError result is a soft,
	// handler-reported failure: content for the caller, not a dispatch fault.
	Status string

	// Content is the human-readable outcome text
	Content string

	// Artifacts lists file paths the handler produced
	Artifacts []string

	// SideEffects tags externally visible actions the handler took
	SideEffects []string

	// Metadata carries free-form result values
	Metadata map[string]interface{}
}

// OK reports whether the handler declared the invocation successful.
func (r *Result) OK() bool {
	return r != nil && r.Status == StatusOK
}
