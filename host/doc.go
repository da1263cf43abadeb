// Package host implements the host side of the remote-invocation bridge: the
// Connection to a remote runtime, the opaque object references issued on it,
// the invocation engine that drives method, constructor, and static calls
// over one wire message shape, and the codec between host-native values and
// the wire encoding.
package host
