package script

import "fmt"

// AbortError is the recognized early-termination signal a script can raise.
// It is control flow, not a crash: the lifecycle gives it its own branch
// (abort hook, output flush) instead of the generic error path. Cause, when
// set, is re-raised as the final error for the invocation.
type AbortError struct {
	Cause error
}

func (e *AbortError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("script aborted: %v", e.Cause)
	}
	return "script aborted"
}

func (e *AbortError) Unwrap() error { return e.Cause }

// MethodNotFoundError reports that a script instance exposes no callable with
// the requested name. Dispatch does not validate method existence; this typed
// failure at invoke time is the contract instead.
type MethodNotFoundError struct {
	Method string
	Script string
}

func (e *MethodNotFoundError) Error() string {
	if e.Script != "" {
		return fmt.Sprintf("script %s does not contain a `%s` method", e.Script, e.Method)
	}
	return fmt.Sprintf("script does not contain a `%s` method", e.Method)
}
