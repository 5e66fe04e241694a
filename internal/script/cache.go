package script

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes compiled, constructed script instances keyed by canonical
// absolute path. It is the only cross-invocation shared state in the engine:
// the first invocation for a path pays the compile cost, every later one
// reuses the same instance.
//
// GetOrCompile is atomic per key: concurrent first-time callers for one path
// share a single compile (singleflight), while unrelated paths never contend
// on each other. A failed compile caches nothing, so the next call retries
// after the source is fixed.
type Cache struct {
	registry *Registry
	logger   *slog.Logger

	mu        sync.RWMutex
	instances map[string]Instance
	flight    singleflight.Group
}

// NewCache creates an empty instance cache backed by the given engine registry.
func NewCache(reg *Registry, logger *slog.Logger) *Cache {
	return &Cache{
		registry:  reg,
		logger:    logger,
		instances: make(map[string]Instance),
	}
}

// GetOrCompile returns the cached instance for path, compiling and
// constructing it first if no invocation has used this path yet. The
// returned instance is shared: callers must treat it as read-only.
// The second return reports whether the call was served from cache.
func (c *Cache) GetOrCompile(ctx context.Context, path string) (Instance, bool, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	inst, ok := c.instances[key]
	c.mu.RUnlock()
	if ok {
		return inst, true, nil
	}

	// Collapse concurrent misses for the same key into one compile. The
	// winning call stores the instance before the flight resolves, so every
	// caller observes the same reference.
	v, err, _ := c.flight.Do(key, func() (any, error) {
		// A racing call may have finished while this one queued.
		c.mu.RLock()
		inst, ok := c.instances[key]
		c.mu.RUnlock()
		if ok {
			return inst, nil
		}

		inst, err := c.compile(ctx, key)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.instances[key] = inst
		c.mu.Unlock()
		return inst, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(Instance), false, nil
}

// compile resolves the engine for the path, compiles the source, and
// constructs the instance. Compiler errors propagate unchanged.
func (c *Cache) compile(ctx context.Context, path string) (Instance, error) {
	eng, err := c.registry.Resolve(path)
	if err != nil {
		return nil, err
	}

	desc, err := eng.Compile(ctx, path)
	if err != nil {
		return nil, err
	}

	inst, err := eng.Construct(ctx, desc)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("script compiled", "path", path)
	return inst, nil
}

// Len reports the number of cached instances.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.instances)
}

// Close releases every cached instance that holds external resources and
// empties the cache. Called once at process shutdown.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for path, inst := range c.instances {
		closer, ok := inst.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			c.logger.Error("close script instance", "path", path, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	c.instances = make(map[string]Instance)
	return firstErr
}
