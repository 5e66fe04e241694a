package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lamina-run/lamina/internal/event"
	"github.com/lamina-run/lamina/internal/host"
	"github.com/lamina-run/lamina/internal/model"
	"github.com/lamina-run/lamina/internal/response"
	"github.com/lamina-run/lamina/internal/script"
)

// Runner is the engine's single entry point for the host transport. It is
// safe for concurrent use: the only state shared between invocations is the
// script instance cache.
type Runner struct {
	cache         *script.Cache
	root          string
	defaultScript string
	defaultMethod string
	logger        *slog.Logger
}

// Report describes how one invocation was executed, for callers that record
// history or emit their own telemetry.
type Report struct {
	ScriptPath string
	Source     string
	Method     string
	Status     string
	Duration   time.Duration
}

// NewRunner creates a runner routing scripts under root, with defaultScript
// as the convention fallback.
func NewRunner(cache *script.Cache, root, defaultScript string, logger *slog.Logger) *Runner {
	return &Runner{
		cache:         cache,
		root:          root,
		defaultScript: defaultScript,
		defaultMethod: DefaultMethod,
		logger:        logger,
	}
}

// Handle runs one invocation and returns the finalized response envelope.
// The envelope is complete on every path; a non-nil error means the
// invocation failed and the host should surface an invocation failure
// rather than a normal response.
func (r *Runner) Handle(ctx context.Context, e event.Envelope, hc *host.Context) (*response.Envelope, error) {
	resp, _, err := r.HandleDetailed(ctx, e, hc)
	return resp, err
}

// HandleDetailed is Handle plus an execution report for history recording.
// The report is non-nil on every path.
func (r *Runner) HandleDetailed(ctx context.Context, e event.Envelope, hc *host.Context) (*response.Envelope, *Report, error) {
	start := time.Now()
	resp := response.New()
	if hc == nil {
		hc = &host.Context{RequestID: model.NewID(), Logger: r.logger}
	}

	res := Resolve(e, r.root, r.defaultScript)
	report := &Report{ScriptPath: res.Path, Source: res.Source, Status: model.StatusFailed}

	fail := func(err error) (*response.Envelope, *Report, error) {
		report.Duration = time.Since(start)
		invocationsTotal.WithLabelValues(model.StatusFailed).Inc()
		invocationDuration.Observe(report.Duration.Seconds())
		return resp, report, err
	}

	// The resolver only ever yields an existing routed path or the default;
	// a missing default is the one resolution failure left to report.
	if res.Source == model.SourceDefault {
		if _, err := os.Stat(res.Path); err != nil {
			return fail(fmt.Errorf("script file not found in [%s]", res.Path))
		}
	}

	compileStart := time.Now()
	inst, cached, err := r.cache.GetOrCompile(ctx, res.Path)
	if err != nil {
		scriptCacheTotal.WithLabelValues(cacheMiss).Inc()
		return fail(err)
	}
	if cached {
		scriptCacheTotal.WithLabelValues(cacheHit).Inc()
	} else {
		scriptCacheTotal.WithLabelValues(cacheMiss).Inc()
		compileDuration.Observe(time.Since(compileStart).Seconds())
	}

	report.Method = SelectMethod(e, r.defaultMethod)

	r.logger.Debug("invoking script",
		"request_id", hc.RequestID,
		"script", res.Path,
		"source", res.Source,
		"method", report.Method,
	)

	lc := newLifecycle(inst, e, hc, resp, r.logger)
	status, err := lc.Run(ctx, report.Method)

	report.Status = status
	report.Duration = time.Since(start)
	invocationsTotal.WithLabelValues(status).Inc()
	invocationDuration.Observe(report.Duration.Seconds())

	if err != nil {
		r.logger.Error("invocation failed",
			"request_id", hc.RequestID,
			"script", res.Path,
			"method", report.Method,
			"error", err,
		)
		return resp, report, err
	}
	return resp, report, nil
}
