// Package deps collects the startup dependency declarations of extension
// modules into one combined manifest for session bootstrap. Aggregation is a
// pure, synchronous fold over the requested module names; it needs no live
// connection and runs before any channel exists.
package deps

import (
	"github.com/akzaidi/sparkapi/domain/entities"
	derrors "github.com/akzaidi/sparkapi/domain/errors"
	"github.com/akzaidi/sparkapi/domain/ports"
	"github.com/akzaidi/sparkapi/infrastructure/extensions"
)

type aggregatorConfig struct {
	resolver ports.ModuleResolver
}

func defaultAggregatorConfig() aggregatorConfig {
	return aggregatorConfig{
		resolver: extensions.Default(),
	}
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*aggregatorConfig)

// WithResolver sets the module resolver. Default is the process-wide
// extension registry.
func WithResolver(r ports.ModuleResolver) AggregatorOption {
	return func(c *aggregatorConfig) {
		if r != nil {
			c.resolver = r
		}
	}
}

// Aggregator queries extension modules for the DependencyProvider capability
// and merges their declarations.
type Aggregator struct {
	config aggregatorConfig
}

// NewAggregator creates an Aggregator with the given options.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	cfg := defaultAggregatorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Aggregator{config: cfg}
}

// For returns the dependency declaration of one extension module. A module
// that does not implement the DependencyProvider capability contributes an
// empty declaration; absence of dependencies is the common case, not an
// error. Only a module that cannot be resolved at all fails, with
// *errors.ModuleLookupError.
func (a *Aggregator) For(moduleName string) (entities.Dependency, error) {
	module, ok := a.config.resolver.Resolve(moduleName)
	if !ok {
		return entities.Dependency{}, &derrors.ModuleLookupError{Module: moduleName}
	}
	provider, ok := module.(ports.DependencyProvider)
	if !ok {
		return entities.Dependency{}, nil
	}
	return provider.SparkDependencies(), nil
}

// ForAll folds For over moduleNames in order, concatenating archive paths
// and package coordinates in encounter order across modules. No
// deduplication happens here: load order can matter for native archives, so
// duplicates are a downstream concern. The first lookup failure aborts.
func (a *Aggregator) ForAll(moduleNames []string) (*entities.DependencyManifest, error) {
	manifest := &entities.DependencyManifest{}
	for _, name := range moduleNames {
		dep, err := a.For(name)
		if err != nil {
			return nil, err
		}
		manifest.Append(dep)
	}
	return manifest, nil
}
