package script

import (
	"context"
	"io"

	"github.com/lamina-run/lamina/internal/host"
	"github.com/lamina-run/lamina/internal/response"
)

// Engine is the interface a script compiler/interpreter must implement.
// The engine is an external collaborator: the core treats compilation and
// construction as opaque capabilities.
type Engine interface {
	// Compile parses and compiles the script at path, returning an opaque
	// descriptor. It fails with a descriptive error if the path does not
	// exist or the source is invalid.
	Compile(ctx context.Context, path string) (Descriptor, error)

	// Construct builds a ready-to-invoke instance from a compiled
	// descriptor. Construction runs the script's initializer once; the
	// resulting instance is reused across invocations.
	Construct(ctx context.Context, d Descriptor) (Instance, error)
}

// Descriptor is an opaque handle to a compiled script, produced by Compile
// and consumed by Construct. Engines define their own concrete type.
type Descriptor any

// Instance is a constructed, ready-to-invoke script. Instances are owned by
// the cache once inserted; invocations borrow a reference but never mutate
// or destroy it. Instances that hold external resources may additionally
// implement io.Closer; the cache closes them at shutdown.
type Instance interface {
	// Invoke calls the named entry-point with the fixed three-argument
	// contract in args. It returns the script's return value (nil when the
	// script returns nothing), a *MethodNotFoundError when the instance has
	// no callable of that name, or a *AbortError when the script raises the
	// abort signal.
	Invoke(ctx context.Context, method string, args Args) (any, error)
}

// Args is the fixed argument tuple passed to every entry-point call: the
// inbound event, the host invocation context, and the mutable response
// envelope the script may write into directly. Output receives anything the
// script prints during the call; the buffer is per-invocation, so shared
// instances stay safe under concurrent invokes.
type Args struct {
	Event    map[string]any
	Host     *host.Context
	Response *response.Envelope
	Output   io.Writer

	// Error carries the pending invocation error into the end and error
	// hooks. It is nil for entry-point calls and the start hook.
	Error error
}
