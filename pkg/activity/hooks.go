package activity

import (
	"context"
	"fmt"
	"strings"
)

// Hook receives normalized events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, event Event) error

// Notify implements Hook.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans an event out to every hook in order.
type Hooks []Hook

// Compact returns a copy without nil hooks, or nil when none remain.
func (h Hooks) Compact() Hooks {
	var out Hooks
	for _, hook := range h {
		if hook != nil {
			out = append(out, hook)
		}
	}
	return out
}

// Notify normalizes event and calls every hook even when earlier ones fail.
// Invalid events are dropped. Failures come back as a *NotifyError.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}
	normalized := Normalize(event)
	if !normalized.Valid() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var failures []HookFailure
	for i, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			failures = append(failures, HookFailure{Index: i, Err: err})
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &NotifyError{Verb: normalized.Verb, Failures: failures}
}

// HookFailure is one hook's error with its position in Hooks.
type HookFailure struct {
	Index int
	Err   error
}

// NotifyError collects the hooks that failed for one event.
type NotifyError struct {
	Verb     string
	Failures []HookFailure
}

func (e *NotifyError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, failure := range e.Failures {
		parts[i] = fmt.Sprintf("hook %d: %v", failure.Index, failure.Err)
	}
	return fmt.Sprintf("activity: %s: %s", e.Verb, strings.Join(parts, "; "))
}

// Unwrap exposes every hook error to errors.Is and errors.As.
func (e *NotifyError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, failure := range e.Failures {
		errs[i] = failure.Err
	}
	return errs
}
