// Package response defines the normalized response envelope handed back to
// the invocation host. The envelope is created once per invocation with
// baseline defaults, passed by reference into the script so it can be written
// directly, and finalized from the script's return value when the script
// returns instead of writing.
package response

// Baseline header values applied to every new envelope.
const (
	defaultContentType = "application/json"
	defaultCORSOrigin  = "*"
)

// Envelope is the structured output of one invocation. All four fields are
// always present, on every path, including failed invocations.
type Envelope struct {
	StatusCode int            `json:"statusCode"`
	Headers    map[string]any `json:"headers"`
	Body       any            `json:"body"`
	Cookies    []string       `json:"cookies"`
}

// New builds the baseline envelope: status 200, content-type and CORS
// headers, empty body, no cookies.
func New() *Envelope {
	return &Envelope{
		StatusCode: 200,
		Headers: map[string]any{
			"Content-Type":                defaultContentType,
			"Access-Control-Allow-Origin": defaultCORSOrigin,
		},
		Body:    "",
		Cookies: []string{},
	}
}

// Finalize writes a non-nil script return value into the body. A returned
// value always wins over whatever the script wrote through the envelope;
// a nil return leaves the envelope untouched.
func (e *Envelope) Finalize(result any) {
	if result != nil {
		e.Body = result
	}
}

// AppendOutput merges buffered script output into the body. When the body is
// the default empty string the output becomes the body; when the body already
// holds a string the output is appended. Non-string bodies are left alone so
// structured results are never clobbered by stray prints.
func (e *Envelope) AppendOutput(out string) {
	if out == "" {
		return
	}
	if s, ok := e.Body.(string); ok {
		e.Body = s + out
	}
}
