package procengine

// Error kinds the interpreter reports in a response frame. The engine maps
// them to the typed failures the lifecycle branches on.
const (
	errKindAbort          = "abort"
	errKindMethodNotFound = "method_not_found"
	errKindRuntime        = "runtime"
)

// invokeRequest is the JSON frame written to the interpreter's stdin for one
// entry-point call.
type invokeRequest struct {
	Method   string         `json:"method"`
	Event    map[string]any `json:"event"`
	Context  invokeContext  `json:"context"`
	Response any            `json:"response"`
	Error    string         `json:"error,omitempty"`
}

// invokeContext is the host metadata forwarded to the script.
type invokeContext struct {
	RequestID    string `json:"request_id"`
	FunctionName string `json:"function_name,omitempty"`
	RemainingMS  int64  `json:"remaining_ms"`
}

// invokeResponse is the JSON frame read back from the interpreter's stdout.
// Output carries everything the script printed; Response is the envelope as
// the script left it.
type invokeResponse struct {
	OK       bool            `json:"ok"`
	Value    any             `json:"value,omitempty"`
	Response *envelopeState  `json:"response,omitempty"`
	Output   string          `json:"output,omitempty"`
	Error    *invokeFrameErr `json:"error,omitempty"`
}

// envelopeState mirrors the response envelope across the process boundary.
type envelopeState struct {
	StatusCode int            `json:"statusCode"`
	Headers    map[string]any `json:"headers"`
	Body       any            `json:"body"`
	Cookies    []string       `json:"cookies"`
}

// invokeFrameErr is a structured failure reported by the interpreter.
type invokeFrameErr struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}
