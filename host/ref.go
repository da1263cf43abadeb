package host

import (
	"context"
	"fmt"
)

// ObjectRef is an opaque handle naming one object inside the remote runtime.
// It records which Connection it belongs to; the back-reference is lookup
// only, never lifetime control. References support no field access, only
// invocation.
type ObjectRef struct {
	conn           *Connection
	handle         string
	remoteClass    string
	classification string
}

// OwningConnection returns the Connection this reference was issued on.
func (r *ObjectRef) OwningConnection() *Connection { return r.conn }

// Handle returns the opaque handle token.
func (r *ObjectRef) Handle() string { return r.handle }

// RemoteClass returns the remote runtime's class name for the object, when
// the runtime reported one.
func (r *ObjectRef) RemoteClass() string { return r.remoteClass }

// Classification returns the reference's classification tag, distinguishing
// a generic remote object from specialized views.
func (r *ObjectRef) Classification() string { return r.classification }

// Underlying returns the reference itself. Defined so that generic code can
// treat references and specialized views uniformly.
func (r *ObjectRef) Underlying() *ObjectRef { return r }

// Equal reports whether two references name the same remote object: same
// owning connection, same handle token.
func (r *ObjectRef) Equal(other *ObjectRef) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.conn.id == other.conn.id && r.handle == other.handle
}

// Invoke calls method on the remote object. Equivalent to
// r.OwningConnection().Invoke(ctx, r, method, args...).
func (r *ObjectRef) Invoke(ctx context.Context, method string, args ...any) (any, error) {
	return r.conn.Invoke(ctx, r, method, args...)
}

// Release drops the reference before its Connection is torn down: the handle
// is removed from the registry and the remote runtime is told to forget the
// object. Failure to notify the remote side is logged, not fatal; the local
// invalidation always happens.
func (r *ObjectRef) Release(ctx context.Context) error {
	if err := r.conn.checkRef(r); err != nil {
		return err
	}
	r.conn.dropRef(r.handle)
	if err := r.conn.release(ctx, r.handle); err != nil {
		r.conn.logger.Warn("remote release failed", "handle", r.handle, "error", err)
	}
	return nil
}

func (r *ObjectRef) String() string {
	return fmt.Sprintf("<%s %s/%s>", r.classification, r.conn.id, r.handle)
}
