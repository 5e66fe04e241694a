// Package host models the invocation context supplied by the serverless
// host: request identity, the wall-clock budget, and a structured logger.
// Scripts receive it as the second argument of every entry-point call.
package host

import (
	"log/slog"
	"time"
)

// Context carries per-invocation host metadata. It is created by the
// transport for each invocation and never shared between invocations.
type Context struct {
	RequestID    string    `json:"request_id"`
	FunctionName string    `json:"function_name"`
	Deadline     time.Time `json:"deadline,omitzero"`

	Logger *slog.Logger `json:"-"`
}

// Remaining reports the wall-clock budget left before the host's deadline.
// A zero deadline means no budget is enforced; Remaining returns 0 in that
// case and also once the deadline has passed.
func (c *Context) Remaining() time.Duration {
	if c.Deadline.IsZero() {
		return 0
	}
	if d := time.Until(c.Deadline); d > 0 {
		return d
	}
	return 0
}

// Log returns the context logger, falling back to the process default so
// callers never have to nil-check before logging.
func (c *Context) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
