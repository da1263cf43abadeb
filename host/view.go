package host

import (
	"context"

	"github.com/akzaidi/sparkapi/domain/entities"
	derrors "github.com/akzaidi/sparkapi/domain/errors"
)

// DataFrame is the tabular data view over a remote reference. Conversion is
// structural: the view wraps the same underlying handle, never a copy.
type DataFrame struct {
	ref *ObjectRef
}

// AsDataFrame converts a reference to the tabular data view. References
// whose remote classification is anything else fail with
// *errors.TypeMismatchError.
func AsDataFrame(ref *ObjectRef) (*DataFrame, error) {
	if err := checkView(ref, entities.ClassificationDataFrame); err != nil {
		return nil, err
	}
	return &DataFrame{ref: ref}, nil
}

// Underlying returns the wrapped reference.
func (d *DataFrame) Underlying() *ObjectRef { return d.ref }

// OwningConnection implements ConnectionHolder.
func (d *DataFrame) OwningConnection() *Connection { return d.ref.conn }

// Invoke calls a method on the underlying remote object.
func (d *DataFrame) Invoke(ctx context.Context, method string, args ...any) (any, error) {
	return d.ref.Invoke(ctx, method, args...)
}

// SessionContext is the execution context view over a remote reference,
// typically the runtime's entry-point session object.
type SessionContext struct {
	ref *ObjectRef
}

// AsSessionContext converts a reference to the execution context view.
func AsSessionContext(ref *ObjectRef) (*SessionContext, error) {
	if err := checkView(ref, entities.ClassificationSessionContext); err != nil {
		return nil, err
	}
	return &SessionContext{ref: ref}, nil
}

// Underlying returns the wrapped reference.
func (s *SessionContext) Underlying() *ObjectRef { return s.ref }

// OwningConnection implements ConnectionHolder.
func (s *SessionContext) OwningConnection() *Connection { return s.ref.conn }

// Invoke calls a method on the underlying remote object.
func (s *SessionContext) Invoke(ctx context.Context, method string, args ...any) (any, error) {
	return s.ref.Invoke(ctx, method, args...)
}

func checkView(ref *ObjectRef, want string) error {
	if ref == nil {
		return &derrors.InvalidReferenceError{Reason: "nil reference"}
	}
	if ref.classification != want {
		return &derrors.TypeMismatchError{
			Handle: ref.handle,
			Want:   want,
			Got:    ref.classification,
		}
	}
	return nil
}
