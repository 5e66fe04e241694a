package runtime

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/lamina-run/lamina/internal/host"
	"github.com/lamina-run/lamina/internal/model"
	"github.com/lamina-run/lamina/internal/response"
	"github.com/lamina-run/lamina/internal/script"
)

// Optional hook methods a script may define. Each receives the same argument
// tuple as the entry-point; the end and error hooks additionally see the
// pending error.
const (
	hookRequestStart = "onRequestStart"
	hookAbort        = "onAbort"
	hookRequestEnd   = "onRequestEnd"
	hookError        = "onError"
)

// lifecycle drives one invocation through its hook state machine:
// start hook → invoke → {completed | aborted | errored} → end hook →
// error resolution. One lifecycle exists per invocation and is never reused.
type lifecycle struct {
	inst   script.Instance
	event  map[string]any
	host   *host.Context
	resp   *response.Envelope
	out    bytes.Buffer
	logger *slog.Logger
}

func newLifecycle(inst script.Instance, e map[string]any, hc *host.Context, resp *response.Envelope, logger *slog.Logger) *lifecycle {
	return &lifecycle{
		inst:   inst,
		event:  e,
		host:   hc,
		resp:   resp,
		logger: logger,
	}
}

// Run executes the entry-point with its surrounding hooks and returns the
// terminal status plus the error the caller should observe (nil when the
// invocation completed or the error hook handled the failure).
//
// Failure policy: a start-hook failure short-circuits straight to the end
// hook. An abort fires the abort hook and flushes buffered output; an abort
// cause outranks an abort-hook failure as the pending error. Any other
// invoke failure is captured and deferred so end-of-request cleanup still
// runs. The end hook fires exactly once on every path, with output flushed
// before and after it, and its own failure never masks an earlier error.
func (l *lifecycle) Run(ctx context.Context, method string) (string, error) {
	var pending error
	status := model.StatusCompleted

	if err := l.fireHook(ctx, hookRequestStart, nil); err != nil {
		pending = err
		status = model.StatusFailed
	} else {
		value, err := l.inst.Invoke(ctx, method, l.args(nil))
		var abort *script.AbortError
		switch {
		case err == nil:
			l.resp.Finalize(value)
		case errors.As(err, &abort):
			status = model.StatusAborted
			if hookErr := l.fireHook(ctx, hookAbort, nil); hookErr != nil {
				pending = hookErr
			}
			l.flush()
			if abort.Cause != nil {
				pending = abort.Cause
			}
		default:
			pending = err
			status = model.StatusFailed
		}
	}

	l.flush()
	if endErr := l.fireHook(ctx, hookRequestEnd, pending); endErr != nil {
		if pending == nil {
			pending = endErr
			status = model.StatusFailed
		} else {
			l.logger.Error("request end hook failed", "error", endErr)
		}
	}
	l.flush()

	if pending != nil {
		pending = l.resolveError(ctx, pending)
	}
	if pending != nil {
		status = model.StatusFailed
	} else if status == model.StatusFailed {
		// The error hook handled the failure: the caller sees a normal
		// response, so the terminal status reflects that.
		status = model.StatusCompleted
	}
	return status, pending
}

// args assembles the fixed argument tuple, threading the per-invocation
// output buffer and an optional pending error.
func (l *lifecycle) args(pending error) script.Args {
	return script.Args{
		Event:    l.event,
		Host:     l.host,
		Response: l.resp,
		Output:   &l.out,
		Error:    pending,
	}
}

// fireHook invokes an optional hook method. A missing hook is not an error;
// anything else the hook raises is returned to the caller's failure policy.
func (l *lifecycle) fireHook(ctx context.Context, name string, pending error) error {
	_, err := l.inst.Invoke(ctx, name, l.args(pending))
	var notFound *script.MethodNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// resolveError offers the pending error to the script's onError hook. A hook
// returning true has handled the error and suppresses propagation. A missing
// hook, a hook failure, or any other return value leaves the original error
// in place; the hook's own failure is a secondary diagnostic, logged only.
func (l *lifecycle) resolveError(ctx context.Context, pending error) error {
	value, err := l.inst.Invoke(ctx, hookError, l.args(pending))
	if err != nil {
		var notFound *script.MethodNotFoundError
		if !errors.As(err, &notFound) {
			l.logger.Error("error hook failed", "error", err, "pending", pending)
		}
		return pending
	}
	if handled, ok := value.(bool); ok && handled {
		return nil
	}
	return pending
}

// flush moves buffered script output into the envelope so it survives hook
// failures and aborts.
func (l *lifecycle) flush() {
	if l.out.Len() == 0 {
		return
	}
	l.resp.AppendOutput(l.out.String())
	l.out.Reset()
}
