// Package sparkapi is a cross-runtime remote-invocation bridge: it lets a Go
// host issue method calls, constructor calls, and static-method calls
// against objects living in a separate, long-running runtime process, and
// lets extension modules declare the native dependencies that runtime must
// load at startup.
//
// The root package re-exports the working surface; the layered packages
// (host, wireformat, domain/..., application/deps) hold the implementation.
package sparkapi

import (
	"context"

	"github.com/akzaidi/sparkapi/application/deps"
	"github.com/akzaidi/sparkapi/domain/entities"
	"github.com/akzaidi/sparkapi/domain/ports"
	"github.com/akzaidi/sparkapi/host"
	"github.com/akzaidi/sparkapi/infrastructure/extensions"
)

// Config represents the free-form session configuration passed around at
// bootstrap time.
type Config map[string]any

// Re-exported core types.
type (
	// Connection is one live channel to a remote runtime.
	Connection = host.Connection
	// ObjectRef is an opaque handle to one remote object.
	ObjectRef = host.ObjectRef
	// DataFrame is the tabular data view over a reference.
	DataFrame = host.DataFrame
	// SessionContext is the execution context view over a reference.
	SessionContext = host.SessionContext
	// ConnectionHolder is implemented by every connection, reference,
	// and view variant.
	ConnectionHolder = host.ConnectionHolder
	// Dependency is one extension module's startup declaration.
	Dependency = entities.Dependency
	// DependencyManifest is the aggregate across extension modules.
	DependencyManifest = entities.DependencyManifest
	// DependencyProvider is the capability an extension module
	// implements to declare dependencies.
	DependencyProvider = ports.DependencyProvider
	// Dialer establishes transports to remote runtimes.
	Dialer = ports.Dialer
	// Transport is one reliable request/response channel.
	Transport = ports.Transport
)

// Open dials the remote runtime at target and returns a live Connection.
func Open(ctx context.Context, dialer Dialer, target string, opts ...host.Option) (*Connection, error) {
	return host.Open(ctx, dialer, target, opts...)
}

// sessionSettings is the validated shape of the bootstrap Config. The master
// URL is the dial target; everything else is optional.
type sessionSettings struct {
	Master  string `json:"master" validate:"required"`
	AppName string `json:"app_name,omitempty"`
}

// OpenSession validates a bootstrap Config and dials the remote runtime it
// names. The "master" key is required and becomes the dial target. When
// "app_name" is present it is forwarded to the runtime's entry-point session
// via setAppName; a failure there tears the fresh connection back down.
func OpenSession(ctx context.Context, dialer Dialer, cfg Config, opts ...host.Option) (*Connection, error) {
	var settings sessionSettings
	if err := ValidateConfig(cfg, &settings); err != nil {
		return nil, err
	}

	conn, err := host.Open(ctx, dialer, settings.Master, opts...)
	if err != nil {
		return nil, err
	}

	if name, ok := GetString(cfg, "app_name"); ok && conn.Entry() != nil {
		if _, err := conn.Invoke(ctx, conn.Entry(), "setAppName", name); err != nil {
			_ = conn.Close(ctx)
			return nil, err
		}
	}
	return conn, nil
}

// AsDataFrame converts a reference to the tabular data view.
func AsDataFrame(ref *ObjectRef) (*DataFrame, error) {
	return host.AsDataFrame(ref)
}

// AsSessionContext converts a reference to the execution context view.
func AsSessionContext(ref *ObjectRef) (*SessionContext, error) {
	return host.AsSessionContext(ref)
}

// OwningConnection recovers the Connection from any reference-shaped value.
func OwningConnection(holder ConnectionHolder) *Connection {
	if holder == nil {
		return nil
	}
	return holder.OwningConnection()
}

// NewDependency declares archive paths and package coordinates for one
// extension module.
func NewDependency(jars, packages []string) Dependency {
	return entities.NewDependency(jars, packages)
}

// RegisterExtension adds an extension module to the process-wide registry so
// dependency aggregation can find it by name.
func RegisterExtension(name string, module any) error {
	return extensions.Register(name, module)
}

// DependenciesFor returns the dependency declaration of one registered
// extension module.
func DependenciesFor(moduleName string) (Dependency, error) {
	return deps.NewAggregator().For(moduleName)
}

// DependenciesForAll merges the declarations of the named extension modules,
// preserving encounter order.
func DependenciesForAll(moduleNames []string) (*DependencyManifest, error) {
	return deps.NewAggregator().ForAll(moduleNames)
}
