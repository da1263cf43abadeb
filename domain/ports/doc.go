// Package ports defines the interfaces the bridge core needs from its
// external collaborators: the transport that reaches the remote runtime, the
// resolver that locates extension modules, and the capability contract an
// extension module implements to declare startup dependencies.
package ports
