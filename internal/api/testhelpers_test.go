package api

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lamina-run/lamina/internal/runtime"
	"github.com/lamina-run/lamina/internal/script"
	"github.com/lamina-run/lamina/internal/store"
)

// invokeFn is one scripted method body for the stub engine.
type invokeFn func(args script.Args) (any, error)

// stubEngine serves every compiled script from the same method table.
type stubEngine struct {
	methods map[string]invokeFn
}

func (s *stubEngine) Compile(_ context.Context, path string) (script.Descriptor, error) {
	return path, nil
}

func (s *stubEngine) Construct(_ context.Context, d script.Descriptor) (script.Instance, error) {
	return &stubInstance{path: d.(string), methods: s.methods}, nil
}

type stubInstance struct {
	path    string
	methods map[string]invokeFn
}

func (s *stubInstance) Invoke(_ context.Context, method string, args script.Args) (any, error) {
	fn, ok := s.methods[method]
	if !ok {
		return nil, &script.MethodNotFoundError{Method: method, Script: s.path}
	}
	return fn(args)
}

// newTestServer builds a server over a temp script root whose default script
// behaves per methods, backed by an in-memory store.
func newTestServer(t *testing.T, methods map[string]invokeFn) *Server {
	t.Helper()

	root := t.TempDir()
	def := filepath.Join(root, "Lambda.bx")
	for _, name := range []string{"Lambda.bx", "Products.bx"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("class {}"), 0o644); err != nil {
			t.Fatalf("write script: %v", err)
		}
	}

	reg := script.NewRegistry()
	reg.Register(".bx", &stubEngine{methods: methods})

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cache := script.NewCache(reg, logger)
	t.Cleanup(func() { cache.Close() })

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	runner := runtime.NewRunner(cache, root, def, logger)
	return NewServer(":0", runner, st, logger)
}
