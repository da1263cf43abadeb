package ports

import "context"

// Transport is one reliable, ordered request/response channel to a remote
// runtime. The core does not implement framing, retries, or reconnection; a
// Transport that returns an error is treated as broken and the effect of the
// in-flight request on remote state is indeterminate.
type Transport interface {
	// Send writes one encoded request and blocks until the matching
	// response arrives or the channel fails.
	Send(ctx context.Context, request []byte) (response []byte, err error)

	// Close tears the channel down. Closing an already closed transport
	// is a no-op.
	Close(ctx context.Context) error
}

// Handshake describes the remote runtime's entry point, reported by the
// transport when the channel is established: the handle token of the
// top-level session object and its remote class.
type Handshake struct {
	EntryHandle    string
	EntryClass     string
	Classification string
}

// Dialer establishes a Transport to a remote runtime target. Dialing is not
// retried by the core; callers retry explicitly if at all.
type Dialer interface {
	Dial(ctx context.Context, target string) (Transport, *Handshake, error)
}
