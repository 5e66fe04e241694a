// Package event provides read access to the inbound invocation envelope.
// Hosts deliver the event as an already-decoded JSON object whose shape
// varies by trigger (API Gateway v1/v2, function URLs, direct invokes);
// the helpers here normalize the handful of lookups the engine needs
// without ever mutating the envelope.
package event

// Envelope is the inbound event for one invocation.
type Envelope map[string]any

// RoutePath extracts the routable URI path from the envelope, checking the
// shapes hosts present it in, in order: requestContext.http.path (API
// Gateway v2 / function URLs), requestContext.resourcePath (API Gateway v1),
// a top-level rawPath, then a top-level path. Returns "" when none is
// present and non-empty.
func RoutePath(e Envelope) string {
	if rc, ok := nestedMap(e, "requestContext"); ok {
		if httpCtx, ok := nestedMap(rc, "http"); ok {
			if p := stringAt(httpCtx, "path"); p != "" {
				return p
			}
		}
		if p := stringAt(rc, "resourcePath"); p != "" {
			return p
		}
	}
	if p := stringAt(e, "rawPath"); p != "" {
		return p
	}
	return stringAt(e, "path")
}

// Header returns the value of key inside the envelope's nested headers map.
// The lookup is case-sensitive. Returns "" when the headers map or the key
// is absent, or the value is not a string.
func Header(e Envelope, key string) string {
	headers, ok := nestedMap(e, "headers")
	if !ok {
		return ""
	}
	return stringAt(headers, key)
}

// nestedMap fetches a child object, tolerating both map[string]any (the
// usual json.Unmarshal shape) and Envelope values.
func nestedMap(m map[string]any, key string) (map[string]any, bool) {
	switch v := m[key].(type) {
	case map[string]any:
		return v, true
	case Envelope:
		return v, true
	default:
		return nil, false
	}
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
