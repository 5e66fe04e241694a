// Package runtime is the request-execution core. For each invocation it
// resolves which script to run (convention routing with a default fallback),
// selects the entry-point method, obtains a compiled instance from the shared
// cache, drives the hook lifecycle around the call, and finalizes the
// response envelope handed back to the host transport.
package runtime
