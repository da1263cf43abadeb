// Package errors provides the bridge's domain error types. All error types
// support unwrapping via errors.As() and errors.Is(), and every failure keeps
// enough detail for the caller to distinguish bad arguments from a remote
// failure from a dead channel.
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/akzaidi/sparkapi/wireformat"
)

// Detail is the structured, transport-independent description of a failure.
// Error Types: "connection", "closed", "reference", "remote", "type", "module", "codec"
type Detail struct {
	Remote  *wireformat.RemoteError `json:"remote,omitempty"`
	Message string                  `json:"message"`
	Type    string                  `json:"type"`
	Code    string                  `json:"code,omitempty"`
}

// DetailedError is implemented by error types that can convert themselves to
// a structured Detail. New error types only need to implement this interface
// without modifying ToDetail.
type DetailedError interface {
	error
	ToDetail() *Detail
}

// ToDetail converts any Go error to a structured Detail, recognizing the
// bridge's own error types.
func ToDetail(err error) *Detail {
	if err == nil {
		return nil
	}
	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToDetail()
	}
	return &Detail{Message: err.Error(), Type: "internal"}
}

// ConnectionError represents a channel that is unreachable or broke mid-call.
// A call that failed this way has indeterminate effect on remote-side state.
type ConnectionError struct {
	Err          error
	ConnectionID string
	Operation    string
}

func (e *ConnectionError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("connection %s: %s failed: %v", e.ConnectionID, e.Operation, e.Err)
	}
	return fmt.Sprintf("connection %s failed: %v", e.ConnectionID, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ToDetail implements DetailedError.
func (e *ConnectionError) ToDetail() *Detail {
	return &Detail{Message: e.Error(), Type: "connection", Code: e.Operation}
}

// ConnectionClosedError represents use of a Connection after teardown.
type ConnectionClosedError struct {
	ConnectionID string
	Operation    string
}

func (e *ConnectionClosedError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("connection %s is closed: %s refused", e.ConnectionID, e.Operation)
	}
	return fmt.Sprintf("connection %s is closed", e.ConnectionID)
}

// ToDetail implements DetailedError.
func (e *ConnectionClosedError) ToDetail() *Detail {
	return &Detail{Message: e.Error(), Type: "closed", Code: e.Operation}
}

// InvalidReferenceError represents a remote reference that is not owned by an
// open Connection: released, orphaned by teardown, or issued on a different
// channel than the one it was used with.
type InvalidReferenceError struct {
	ConnectionID string
	Handle       string
	Reason       string
}

func (e *InvalidReferenceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid reference %s on connection %s: %s", e.Handle, e.ConnectionID, e.Reason)
	}
	return fmt.Sprintf("invalid reference %s on connection %s", e.Handle, e.ConnectionID)
}

// ToDetail implements DetailedError.
func (e *InvalidReferenceError) ToDetail() *Detail {
	return &Detail{Message: e.Error(), Type: "reference", Code: e.Reason}
}

// RemoteInvocationError represents an exception raised inside the remote
// runtime during a call. The remote diagnostic payload is carried verbatim.
type RemoteInvocationError struct {
	Remote *wireformat.RemoteError
	Target string
}

func (e *RemoteInvocationError) Error() string {
	return fmt.Sprintf("remote invocation %s failed: %v", e.Target, e.Remote)
}

func (e *RemoteInvocationError) Unwrap() error { return e.Remote }

// ToDetail implements DetailedError.
func (e *RemoteInvocationError) ToDetail() *Detail {
	return &Detail{Message: e.Error(), Type: "remote", Code: e.Target, Remote: e.Remote}
}

// TypeMismatchError represents a specialized-view conversion requested on a
// reference of the wrong remote classification.
type TypeMismatchError struct {
	Handle string
	Want   string
	Got    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("reference %s is %q, not %q", e.Handle, e.Got, e.Want)
}

// ToDetail implements DetailedError.
func (e *TypeMismatchError) ToDetail() *Detail {
	return &Detail{Message: e.Error(), Type: "type", Code: e.Want}
}

// ModuleLookupError represents an extension module that could not be resolved
// at all. A resolved module with no dependency declaration is not an error.
type ModuleLookupError struct {
	Err    error
	Module string
}

func (e *ModuleLookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extension module %q not found: %v", e.Module, e.Err)
	}
	return fmt.Sprintf("extension module %q not found", e.Module)
}

func (e *ModuleLookupError) Unwrap() error { return e.Err }

// ToDetail implements DetailedError.
func (e *ModuleLookupError) ToDetail() *Detail {
	return &Detail{Message: e.Error(), Type: "module", Code: e.Module}
}

// CodecError represents a host value that has no wire representation, or a
// wire payload the host cannot decode.
type CodecError struct {
	Err       error
	Operation string
	GoType    string
}

func (e *CodecError) Error() string {
	if e.GoType != "" {
		return fmt.Sprintf("codec %s failed for Go type %s: %v", e.Operation, e.GoType, e.Err)
	}
	return fmt.Sprintf("codec %s failed: %v", e.Operation, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// ToDetail implements DetailedError.
func (e *CodecError) ToDetail() *Detail {
	return &Detail{Message: e.Error(), Type: "codec", Code: e.Operation}
}
