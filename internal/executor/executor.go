package executor

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"skilld/internal/analytics"
	"skilld/internal/handler"
	"skilld/internal/registry"
	"skilld/internal/skill"
	"skilld/pkg/logging"
)

// DefaultTimeout bounds a handler execution when the caller does not
// override it.
const DefaultTimeout = 30 * time.Second

// Dispatcher resolves a capability's handler through the registry and runs
// it isolated on its own goroutine under a time bound. It never panics into
// the caller and never blocks past the requested timeout, regardless of
// handler behavior. Concurrently dispatched calls are fully independent.
type Dispatcher struct {
	registry *registry.Registry
	handlers *handler.Table
	emitter  analytics.Emitter
	timeout  time.Duration
}

// New creates a dispatcher. A zero timeout selects DefaultTimeout; a nil
// emitter disables analytics.
func New(reg *registry.Registry, handlers *handler.Table, emitter analytics.Emitter, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if emitter == nil {
		emitter = analytics.NopEmitter{}
	}
	return &Dispatcher{
		registry: reg,
		handlers: handlers,
		emitter:  emitter,
		timeout:  timeout,
	}
}

// outcome is what the handler goroutine reports back.
type outcome struct {
	result   *skill.Result
	err      error
	panicked bool
	reason   string
}

// Execute dispatches the named capability with the dispatcher's default
// timeout.
func (d *Dispatcher) Execute(ctx context.Context, name string, params map[string]string, call *skill.CallContext) (*skill.Result, error) {
	return d.ExecuteWithTimeout(ctx, name, params, call, d.timeout)
}

// ExecuteWithTimeout dispatches the named capability, waiting at most
// timeout for a result.
//
// Outcomes:
//   - the handler returns a Result: the Result is returned as-is, even if
//     it carries Status "error" (a soft, handler-reported failure is
//     content for the caller, not a dispatcher fault)
//   - the handler returns an error: the error is propagated unchanged
//   - the handler panics: a CrashError is returned and the process keeps
//     serving subsequent dispatches
//   - the timeout elapses: the handler's context is cancelled, a
//     TimeoutError is returned immediately, and any late result is
//     discarded
//
// Every branch emits one analytics event; emission is fire-and-forget.
func (d *Dispatcher) ExecuteWithTimeout(ctx context.Context, name string, params map[string]string, call *skill.CallContext, timeout time.Duration) (*skill.Result, error) {
	if timeout <= 0 {
		timeout = d.timeout
	}

	def, ok := d.registry.Lookup(name)
	if !ok {
		return nil, &NotFoundError{Skill: name}
	}
	if !def.Dispatchable() {
		return nil, &NotDispatchableError{Skill: name}
	}
	h, ok := d.handlers.Resolve(def.Handler)
	if !ok {
		// Handler was resolvable at parse time but has been unregistered.
		logging.Warn("Executor", "Handler '%s' for %s is no longer registered", def.Handler, name)
		return nil, &NotDispatchableError{Skill: name}
	}

	start := time.Now()
	hctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so a late handler can always deliver and exit; the result
	// is simply never read.
	results := make(chan outcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error("Executor", fmt.Errorf("%v", rec), "Handler for %s panicked:\n%s", name, debug.Stack())
				results <- outcome{panicked: true, reason: fmt.Sprintf("%v", rec)}
			}
		}()
		result, err := h.Execute(hctx, params, call)
		results <- outcome{result: result, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case o := <-results:
		elapsed := time.Since(start)
		switch {
		case o.panicked:
			d.emit(analytics.StatusCrash, def, call, elapsed, o.reason)
			return nil, &CrashError{Skill: name, Reason: o.reason}
		case o.err != nil:
			d.emit(analytics.StatusError, def, call, elapsed, o.err.Error())
			return nil, o.err
		case o.result != nil && o.result.Status == skill.StatusError:
			d.emit(analytics.StatusError, def, call, elapsed, o.result.Content)
			return o.result, nil
		default:
			d.emit(analytics.StatusOK, def, call, elapsed, "")
			return o.result, nil
		}

	case <-timer.C:
		// Cooperative cancellation; we do not wait for the handler to
		// actually stop before returning.
		cancel()
		elapsed := time.Since(start)
		d.emit(analytics.StatusTimeout, def, call, elapsed, fmt.Sprintf("no result within %s", timeout))
		return nil, &TimeoutError{Skill: name, Timeout: timeout}

	case <-ctx.Done():
		cancel()
		elapsed := time.Since(start)
		d.emit(analytics.StatusError, def, call, elapsed, ctx.Err().Error())
		return nil, ctx.Err()
	}
}

// emit reports one execution event. Emitter failures are swallowed so they
// can never fail a dispatch.
func (d *Dispatcher) emit(status string, def *skill.Definition, call *skill.CallContext, elapsed time.Duration, diagnostic string) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Warn("Executor", "Analytics emitter panicked: %v", rec)
		}
	}()

	event := analytics.Event{
		Status:     status,
		Scope:      analytics.ScopeSkillExecutor,
		Skill:      def.Name,
		Handler:    def.Handler,
		DurationMS: elapsed.Milliseconds(),
		Diagnostic: diagnostic,
	}
	if call != nil {
		event.ConversationID = call.ConversationID
		event.UserID = call.UserID
	}
	d.emitter.Emit(event)
}
