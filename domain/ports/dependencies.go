package ports

import "github.com/akzaidi/sparkapi/domain/entities"

// DependencyProvider is the capability contract an extension module
// implements to declare native archives and remote packages the runtime must
// load at startup. Modules that need nothing simply do not implement it;
// absence of the capability is not an error.
type DependencyProvider interface {
	SparkDependencies() entities.Dependency
}

// ModuleResolver locates an extension module by name. The second return
// value reports whether the module exists at all; a module that exists but
// is not a DependencyProvider contributes an empty declaration.
type ModuleResolver interface {
	Resolve(name string) (any, bool)
}
