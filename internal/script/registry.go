package script

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry holds registered script engines and resolves which one compiles a
// given script based on its file extension.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Engine
}

// NewRegistry creates an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]Engine),
	}
}

// Register adds an engine for the given extension (".bx"). Extensions are
// matched case-insensitively.
func (r *Registry) Register(ext string, e Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[normalizeExt(ext)] = e
}

// Resolve returns the engine responsible for the script at path, keyed by
// its extension. Returns an error naming the extension when none is
// registered for it.
func (r *Registry) Resolve(path string) (Engine, error) {
	ext := normalizeExt(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.engines[ext]
	if !ok {
		return nil, fmt.Errorf("no script engine registered for extension %q", ext)
	}
	return e, nil
}

// Extensions returns the registered extensions, sorted for stable output.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.engines))
	for ext := range r.engines {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
