// Package procengine implements the script.Engine interface by driving an
// external interpreter binary. Each entry-point call execs the interpreter's
// invoke subcommand with a JSON frame on stdin and reads a JSON frame from
// stdout; the interpreter buffers script output into the frame rather than
// mixing it into the transport stream.
package procengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/lamina-run/lamina/internal/script"
)

// DefaultInterpreter is the interpreter binary used when none is configured.
const DefaultInterpreter = "bx"

// Options configures the subprocess engine.
type Options struct {
	// Interpreter is the interpreter binary to exec ("bx" by default).
	Interpreter string
	// ConfigFile, when set, is passed to the interpreter on every call.
	ConfigFile string
	// Debug forwards the engine's debug flag to the interpreter.
	Debug bool
}

// Engine compiles and invokes scripts through an external interpreter process.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

var _ script.Engine = (*Engine)(nil)

// New creates a subprocess engine with the given options.
func New(opts Options, logger *slog.Logger) *Engine {
	if opts.Interpreter == "" {
		opts.Interpreter = DefaultInterpreter
	}
	return &Engine{opts: opts, logger: logger}
}

// descriptor is the compiled handle for a verified script source.
type descriptor struct {
	path string
}

// Compile verifies the script source exists and is a regular file. The
// interpreter compiles lazily on first invoke; Compile's job here is to fail
// fast with an error naming the path.
func (e *Engine) Compile(_ context.Context, path string) (script.Descriptor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve script path %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("script file not found in [%s]", abs)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("script path [%s] is a directory, not a source file", abs)
	}

	return &descriptor{path: abs}, nil
}

// Construct builds the reusable instance for a compiled descriptor.
func (e *Engine) Construct(_ context.Context, d script.Descriptor) (script.Instance, error) {
	desc, ok := d.(*descriptor)
	if !ok {
		return nil, fmt.Errorf("procengine: unexpected descriptor type %T", d)
	}
	return &instance{engine: e, path: desc.path}, nil
}

// instance invokes entry-points on one script source. The instance itself is
// stateless between calls, so sharing it across concurrent invocations is safe.
type instance struct {
	engine *Engine
	path   string
}

// Invoke runs one entry-point call through the interpreter and maps the
// response frame back onto the shared envelope and the typed error taxonomy.
func (i *instance) Invoke(ctx context.Context, method string, args script.Args) (any, error) {
	req := invokeRequest{
		Method:   method,
		Event:    args.Event,
		Response: args.Response,
	}
	if args.Error != nil {
		req.Error = args.Error.Error()
	}
	if args.Host != nil {
		req.Context = invokeContext{
			RequestID:    args.Host.RequestID,
			FunctionName: args.Host.FunctionName,
			RemainingMS:  args.Host.Remaining().Milliseconds(),
		}
	}

	frame, err := i.engine.run(ctx, i.path, req)
	if err != nil {
		return nil, err
	}

	if args.Output != nil && frame.Output != "" {
		fmt.Fprint(args.Output, frame.Output)
	}
	if frame.Response != nil && args.Response != nil {
		args.Response.StatusCode = frame.Response.StatusCode
		args.Response.Headers = frame.Response.Headers
		args.Response.Body = frame.Response.Body
		args.Response.Cookies = frame.Response.Cookies
	}

	if frame.Error != nil {
		return nil, i.frameError(method, frame.Error)
	}
	if !frame.OK {
		return nil, fmt.Errorf("interpreter reported failure for %s without detail", i.path)
	}
	return frame.Value, nil
}

// frameError translates a structured interpreter failure into the engine's
// typed errors.
func (i *instance) frameError(method string, fe *invokeFrameErr) error {
	switch fe.Kind {
	case errKindAbort:
		var cause error
		if fe.Cause != "" {
			cause = errors.New(fe.Cause)
		}
		return &script.AbortError{Cause: cause}
	case errKindMethodNotFound:
		return &script.MethodNotFoundError{Method: method, Script: i.path}
	default:
		return fmt.Errorf("script error in %s: %s", i.path, fe.Message)
	}
}

// run execs one interpreter call and decodes its response frame.
func (e *Engine) run(ctx context.Context, path string, req invokeRequest) (*invokeResponse, error) {
	argv := []string{"invoke", path}
	if e.opts.ConfigFile != "" {
		argv = append(argv, "--config", e.opts.ConfigFile)
	}
	if e.opts.Debug {
		argv = append(argv, "--debug")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal invoke frame: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.opts.Interpreter, argv...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("interpreter %s failed: %w: %s", e.opts.Interpreter, err, stderr.String())
	}

	var frame invokeResponse
	if err := json.Unmarshal(stdout.Bytes(), &frame); err != nil {
		return nil, fmt.Errorf("decode interpreter response: %w", err)
	}
	return &frame, nil
}
