package host

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/akzaidi/sparkapi/domain/entities"
	derrors "github.com/akzaidi/sparkapi/domain/errors"
	"github.com/akzaidi/sparkapi/domain/ports"
)

// ConnectionHolder is implemented by everything that can answer "which
// Connection do I belong to": the Connection itself, every ObjectRef, and
// every specialized view. Wrapper code can always recover a Connection from
// whatever reference-shaped value it was handed.
type ConnectionHolder interface {
	OwningConnection() *Connection
}

// Connection is one live channel to a remote runtime process. It owns the
// registry of remote object handles issued on it; closing the Connection
// invalidates every one of them at once.
type Connection struct {
	id        string
	transport ports.Transport
	logger    *slog.Logger
	views     viewRegistry
	entry     *ObjectRef

	// callMu serializes in-flight requests: one logical call per
	// Connection at a time. Concurrent callers block here.
	callMu sync.Mutex

	refMu  sync.Mutex
	refs   map[string]*ObjectRef
	closed atomic.Bool
}

// Open dials the remote runtime at target and returns a live Connection.
// Dial failures surface as *errors.ConnectionError; Open never retries.
func Open(ctx context.Context, dialer ports.Dialer, target string, opts ...Option) (*Connection, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	transport, handshake, err := dialer.Dial(ctx, target)
	if err != nil {
		return nil, &derrors.ConnectionError{Err: err, Operation: "dial", ConnectionID: target}
	}

	c := &Connection{
		id:        uuid.NewString(),
		transport: transport,
		logger:    cfg.logger,
		views:     cfg.views,
		refs:      make(map[string]*ObjectRef),
	}
	c.logger = c.logger.With(slog.String("connection_id", c.id))

	if handshake != nil && handshake.EntryHandle != "" {
		classification := handshake.Classification
		if classification == "" {
			classification = entities.ClassificationSessionContext
		}
		c.entry = c.adoptRef(handshake.EntryHandle, handshake.EntryClass, classification)
	}

	c.logger.Info("connection opened", slog.String("target", target))
	return c, nil
}

// ID returns the opaque channel identifier.
func (c *Connection) ID() string { return c.id }

// OwningConnection implements ConnectionHolder for the Connection itself.
func (c *Connection) OwningConnection() *Connection { return c }

// Entry returns the remote runtime's entry-point object (its top-level
// session object), or nil if the transport reported none.
func (c *Connection) Entry() *ObjectRef { return c.entry }

// Closed reports whether the Connection has been torn down.
func (c *Connection) Closed() bool { return c.closed.Load() }

// Close tears the Connection down. Every ObjectRef issued on it becomes
// invalid in one step; subsequent use fails, never silently succeeds.
// Close is idempotent.
func (c *Connection) Close(ctx context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.refMu.Lock()
	dropped := len(c.refs)
	c.refs = make(map[string]*ObjectRef)
	c.refMu.Unlock()

	c.logger.Info("connection closed", slog.Int("references_dropped", dropped))

	if err := c.transport.Close(ctx); err != nil {
		return &derrors.ConnectionError{Err: err, Operation: "close", ConnectionID: c.id}
	}
	return nil
}

// adoptRef registers a remote handle against this Connection and returns the
// ObjectRef for it. Adopting an already-registered handle returns the
// existing reference, so handle equality and reference identity agree.
func (c *Connection) adoptRef(handle, remoteClass, classification string) *ObjectRef {
	if classification == "" {
		classification = entities.ClassificationObject
	}

	c.refMu.Lock()
	defer c.refMu.Unlock()
	if existing, ok := c.refs[handle]; ok {
		return existing
	}
	ref := &ObjectRef{
		conn:           c,
		handle:         handle,
		remoteClass:    remoteClass,
		classification: classification,
	}
	c.refs[handle] = ref
	return ref
}

// holdsRef reports whether handle is currently registered.
func (c *Connection) holdsRef(handle string) bool {
	c.refMu.Lock()
	defer c.refMu.Unlock()
	_, ok := c.refs[handle]
	return ok
}

func (c *Connection) dropRef(handle string) {
	c.refMu.Lock()
	defer c.refMu.Unlock()
	delete(c.refs, handle)
}

// checkRef validates that ref may be used for a call issued on this
// Connection, failing fast before anything is sent.
func (c *Connection) checkRef(ref *ObjectRef) error {
	if ref == nil {
		return &derrors.InvalidReferenceError{ConnectionID: c.id, Reason: "nil reference"}
	}
	if ref.conn != c {
		return &derrors.InvalidReferenceError{
			ConnectionID: c.id,
			Handle:       ref.handle,
			Reason:       "owned by a different connection",
		}
	}
	if c.closed.Load() {
		return &derrors.ConnectionClosedError{ConnectionID: c.id, Operation: "use reference " + ref.handle}
	}
	if !c.holdsRef(ref.handle) {
		return &derrors.InvalidReferenceError{
			ConnectionID: c.id,
			Handle:       ref.handle,
			Reason:       "released",
		}
	}
	return nil
}
