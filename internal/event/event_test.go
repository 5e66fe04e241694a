package event

import "testing"

func TestRoutePathPrecedence(t *testing.T) {
	cases := []struct {
		name string
		env  Envelope
		want string
	}{
		{
			name: "api gateway v2 http path wins",
			env: Envelope{
				"rawPath": "/raw",
				"requestContext": map[string]any{
					"http": map[string]any{"path": "/products"},
				},
			},
			want: "/products",
		},
		{
			name: "api gateway v1 resource path",
			env: Envelope{
				"requestContext": map[string]any{"resourcePath": "/customers"},
				"path":           "/other",
			},
			want: "/customers",
		},
		{
			name: "raw path fallback",
			env:  Envelope{"rawPath": "/products/123"},
			want: "/products/123",
		},
		{
			name: "top-level path fallback",
			env:  Envelope{"path": "/customers"},
			want: "/customers",
		},
		{
			name: "function url without http path falls through",
			env: Envelope{
				"rawPath": "/products",
				"requestContext": map[string]any{
					"domainName": "abcd1234.lambda-url.us-east-1.on.aws",
					"http":       map[string]any{"method": "GET"},
				},
			},
			want: "/products",
		},
		{
			name: "no routable path",
			env:  Envelope{"name": "direct invoke"},
			want: "",
		},
		{
			name: "mis-typed requestContext ignored",
			env:  Envelope{"requestContext": "not a map", "path": "/ok"},
			want: "/ok",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := RoutePath(c.env); got != c.want {
				t.Errorf("RoutePath() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	env := Envelope{
		"headers": map[string]any{
			"x-bx-function": "hello",
			"count":         42,
		},
	}
	if got := Header(env, "x-bx-function"); got != "hello" {
		t.Errorf("Header() = %q, want %q", got, "hello")
	}
	if got := Header(env, "X-Bx-Function"); got != "" {
		t.Errorf("Header() = %q, lookup must be case-sensitive", got)
	}
	if got := Header(env, "count"); got != "" {
		t.Errorf("Header() = %q, non-string values must read as absent", got)
	}
	if got := Header(Envelope{}, "x-bx-function"); got != "" {
		t.Errorf("Header() = %q, want empty for missing headers map", got)
	}
}
