package runtime

import "github.com/lamina-run/lamina/internal/event"

// FunctionHeader is the fixed, case-sensitive header that carries an
// explicit entry-point override for one invocation.
const FunctionHeader = "x-bx-function"

// DefaultMethod is the conventional entry-point when no override is present.
const DefaultMethod = "run"

// SelectMethod picks the entry-point method for an invocation: the
// FunctionHeader value when present and non-empty, otherwise defaultMethod.
// Whether the method actually exists is checked at invoke time, not here.
func SelectMethod(e event.Envelope, defaultMethod string) string {
	if m := event.Header(e, FunctionHeader); m != "" {
		return m
	}
	return defaultMethod
}
