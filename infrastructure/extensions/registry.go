// Package extensions provides the in-process module registry: extension
// modules register themselves by name at init time, and the dependency
// aggregator resolves them through it. It is the default ModuleResolver
// implementation.
package extensions

import (
	"fmt"
	"sync"
)

type registryConfig struct {
	strictMode bool // Fail on duplicate registrations
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		strictMode: true,
	}
}

// RegistryOption configures a Registry instance.
type RegistryOption func(*registryConfig)

// WithStrictMode enables/disables strict mode for duplicate registrations.
// Default is true (fail on duplicates). Disable only for testing or
// hot-reloading.
func WithStrictMode(enabled bool) RegistryOption {
	return func(c *registryConfig) {
		c.strictMode = enabled
	}
}

// Registry is a named collection of extension modules. It implements
// ports.ModuleResolver.
type Registry struct {
	config  registryConfig
	modules sync.Map // map[string]any
}

// NewRegistry creates an empty Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{config: cfg}
}

// Register adds an extension module under name.
func (r *Registry) Register(name string, module any) error {
	if module == nil {
		return fmt.Errorf("extension module %q is nil", name)
	}
	if r.config.strictMode {
		if _, exists := r.modules.Load(name); exists {
			return fmt.Errorf("extension module %q already registered", name)
		}
	}
	r.modules.Store(name, module)
	return nil
}

// Resolve implements ports.ModuleResolver.
func (r *Registry) Resolve(name string) (any, bool) {
	return r.modules.Load(name)
}

// List returns all registered module names.
func (r *Registry) List() []string {
	var keys []string
	r.modules.Range(func(k, v any) bool {
		keys = append(keys, k.(string))
		return true
	})
	return keys
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds an extension module to the process-wide registry.
func Register(name string, module any) error {
	return defaultRegistry.Register(name, module)
}
