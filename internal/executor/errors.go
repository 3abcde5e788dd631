package executor

import (
	"errors"
	"fmt"
	"time"
)

// NotFoundError indicates a dispatch for a capability name the registry
// does not know.
type NotFoundError struct {
	Skill string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("capability %s not found", e.Skill)
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// NotDispatchableError indicates a capability that exists but has no
// resolved handler (documentation-only), or whose handler identifier is no
// longer registered.
type NotDispatchableError struct {
	Skill string
}

func (e *NotDispatchableError) Error() string {
	return fmt.Sprintf("capability %s has no executable handler", e.Skill)
}

// IsNotDispatchable checks if an error is a NotDispatchableError.
func IsNotDispatchable(err error) bool {
	var target *NotDispatchableError
	return errors.As(err, &target)
}

// TimeoutError indicates the handler did not produce a result within the
// allowed time. The handler's context was cancelled; any late result is
// discarded.
type TimeoutError struct {
	Skill   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("capability %s timed out after %s", e.Skill, e.Timeout)
}

// IsTimeout checks if an error is a TimeoutError.
func IsTimeout(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}

// CrashError indicates the handler panicked. The raw reason is preserved
// for logs; callers must not surface it verbatim to end users.
type CrashError struct {
	Skill  string
	Reason string
}

func (e *CrashError) Error() string {
	return fmt.Sprintf("capability %s crashed: %s", e.Skill, e.Reason)
}

// IsCrash checks if an error is a CrashError.
func IsCrash(err error) bool {
	var target *CrashError
	return errors.As(err, &target)
}
