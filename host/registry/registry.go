// Package registry tracks the view classifications the host understands.
// Each classification is registered with a descriptor model; a JSON Schema is
// generated from the model so embedders and diagnostics tooling can inspect
// what a given view carries.
package registry

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/akzaidi/sparkapi/domain/entities"
)

// ObjectDescriptor is the descriptor model for a generic remote object.
type ObjectDescriptor struct {
	Handle      string `json:"handle"`
	RemoteClass string `json:"remote_class,omitempty"`
}

// DataFrameDescriptor is the descriptor model for the tabular data view.
type DataFrameDescriptor struct {
	Handle      string   `json:"handle"`
	RemoteClass string   `json:"remote_class,omitempty"`
	Columns     []string `json:"columns,omitempty"`
}

// SessionContextDescriptor is the descriptor model for the execution context
// view.
type SessionContextDescriptor struct {
	Handle      string `json:"handle"`
	RemoteClass string `json:"remote_class,omitempty"`
	AppName     string `json:"app_name,omitempty"`
}

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
// Default is true (fail on duplicates).
func WithStrictMode(enabled bool) RegistryOption {
	return func(c *registryConfig) {
		c.strictMode = enabled
	}
}

// Registry maps classification tags to descriptor models and their schemas.
type Registry struct {
	config  registryConfig
	schemas sync.Map // map[string]string (json schema)
	models  sync.Map // map[string]any
}

// NewRegistry creates an empty Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{config: cfg}
}

// Register adds a classification with a descriptor model. The JSON Schema is
// generated from the model via reflection.
func (r *Registry) Register(classification string, model any) error {
	if r.config.strictMode {
		if _, exists := r.schemas.Load(classification); exists {
			return fmt.Errorf("classification %q already registered", classification)
		}
	}

	r.models.Store(classification, model)

	s := jsonschema.Reflect(model)
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal schema for %s: %w", classification, err)
	}
	r.schemas.Store(classification, string(data))
	return nil
}

// Known reports whether a classification has been registered.
func (r *Registry) Known(classification string) bool {
	_, ok := r.schemas.Load(classification)
	return ok
}

// GetSchema retrieves the JSON Schema for a classification.
func (r *Registry) GetSchema(classification string) (string, bool) {
	v, ok := r.schemas.Load(classification)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// List returns all registered classification tags.
func (r *Registry) List() []string {
	var keys []string
	r.schemas.Range(func(k, v any) bool {
		keys = append(keys, k.(string))
		return true
	})
	return keys
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	// The built-in classifications cannot collide in a fresh registry.
	_ = r.Register(entities.ClassificationObject, ObjectDescriptor{})
	_ = r.Register(entities.ClassificationDataFrame, DataFrameDescriptor{})
	_ = r.Register(entities.ClassificationSessionContext, SessionContextDescriptor{})
	return r
}()

// Default returns the shared registry pre-populated with the built-in view
// classifications.
func Default() *Registry {
	return defaultRegistry
}
