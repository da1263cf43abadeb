// Package wireformat defines the JSON wire format structures exchanged with a
// remote runtime. These types are the protocol contract between the host and
// the remote invocation backend and must remain stable and backward
// compatible.
package wireformat

import (
	"fmt"
	"strings"
	"time"
)

// Value kinds. Every encoded argument and every primitive result is a tagged
// Value so the remote side can resolve method overloads from the payload
// alone.
const (
	KindNull   = "null"
	KindBool   = "bool"
	KindInt    = "int"
	KindFloat  = "float"
	KindString = "string"
	KindArray  = "array"
	KindRef    = "ref"
)

// Value is the tagged wire representation of one argument or result.
// Integers travel as JSON strings so 64-bit values survive transit without
// being coerced to floating point by intermediate JSON tooling.
type Value struct {
	Kind   string  `json:"kind"`
	Bool   bool    `json:"bool,omitempty"`
	Int    int64   `json:"int,string,omitempty"`
	Float  float64 `json:"float,omitempty"`
	Str    string  `json:"str,omitempty"`
	Items  []Value `json:"items,omitempty"`
	Handle string  `json:"handle,omitempty"`
}

// Null returns the null Value.
func Null() Value { return Value{Kind: KindNull} }

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// IntValue wraps a 64-bit integer.
func IntValue(v int64) Value { return Value{Kind: KindInt, Int: v} }

// FloatValue wraps a 64-bit float.
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// StringValue wraps text.
func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }

// ArrayValue wraps an ordered sequence of Values.
func ArrayValue(items []Value) Value { return Value{Kind: KindArray, Items: items} }

// RefValue wraps a remote object handle token.
func RefValue(handle string) Value { return Value{Kind: KindRef, Handle: handle} }

// ContextWire carries context.Context deadline information to the remote
// runtime so long-running remote work can be bounded host-side.
type ContextWire struct {
	Deadline  *time.Time `json:"deadline,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
	TimeoutMs int64      `json:"timeout_ms,omitempty"`
}

// CallShape identifies how the remote side should dispatch a request.
type CallShape int

const (
	// ShapeInvalid marks a request whose distinguishing fields are
	// inconsistent (e.g. both target handle and class name set).
	ShapeInvalid CallShape = iota
	// ShapeInstance dispatches a method on an existing remote object.
	ShapeInstance
	// ShapeConstructor constructs a new remote object of ClassName.
	ShapeConstructor
	// ShapeStatic dispatches a static method on ClassName.
	ShapeStatic
	// ShapeRelease drops the remote object named by TargetHandle.
	ShapeRelease
)

func (s CallShape) String() string {
	switch s {
	case ShapeInstance:
		return "instance"
	case ShapeConstructor:
		return "constructor"
	case ShapeStatic:
		return "static"
	case ShapeRelease:
		return "release"
	default:
		return "invalid"
	}
}

// InvocationRequest is the single wire message shape for all call styles.
// The populated fields select dispatch on the remote side: a target handle
// means an instance call, a class name with a method means a static call, a
// class name alone means a constructor, and Release drops a handle.
type InvocationRequest struct {
	ConnectionID string      `json:"connection_id" validate:"required"`
	TargetHandle string      `json:"target_handle,omitempty"`
	ClassName    string      `json:"class_name,omitempty"`
	Method       string      `json:"method,omitempty"`
	Args         []Value     `json:"args,omitempty"`
	Release      bool        `json:"release,omitempty"`
	Context      ContextWire `json:"context"`
}

// Shape derives the dispatch style from the populated fields.
func (r *InvocationRequest) Shape() CallShape {
	switch {
	case r.Release:
		if r.TargetHandle == "" || r.ClassName != "" || r.Method != "" {
			return ShapeInvalid
		}
		return ShapeRelease
	case r.TargetHandle != "" && r.ClassName == "":
		if r.Method == "" {
			return ShapeInvalid
		}
		return ShapeInstance
	case r.TargetHandle == "" && r.ClassName != "":
		if r.Method == "" {
			return ShapeConstructor
		}
		return ShapeStatic
	default:
		return ShapeInvalid
	}
}

// Target describes the request's target for diagnostics.
func (r *InvocationRequest) Target() string {
	if r.Release {
		return fmt.Sprintf("release %s", r.TargetHandle)
	}
	if r.TargetHandle != "" {
		return fmt.Sprintf("object %s.%s", r.TargetHandle, r.Method)
	}
	if r.Method != "" {
		return fmt.Sprintf("static %s.%s", r.ClassName, r.Method)
	}
	return fmt.Sprintf("new %s", r.ClassName)
}

// Result kinds for InvocationResponse.Kind.
const (
	ResultValue     = "value"
	ResultReference = "reference"
	ResultVoid      = "void"
	ResultError     = "error"
)

// InvocationResponse is the wire response for every request. Exactly one of
// Value, Handle, or Error is meaningful, selected by Kind; Void carries
// nothing.
type InvocationResponse struct {
	Kind           string       `json:"kind"`
	Value          *Value       `json:"value,omitempty"`
	Handle         string       `json:"handle,omitempty"`
	Class          string       `json:"class,omitempty"`
	Classification string       `json:"classification,omitempty"`
	Error          *RemoteError `json:"error,omitempty"`
}

// RemoteError is the structured diagnostic payload for an exception captured
// by the remote runtime. It is carried back verbatim, never reinterpreted as
// a host-native value.
type RemoteError struct {
	Message string   `json:"message"`
	Class   string   `json:"class,omitempty"`
	Stack   []string `json:"stack,omitempty"`
}

// Error implements the error interface for RemoteError.
func (e *RemoteError) Error() string {
	if e == nil {
		return ""
	}
	if e.Class != "" {
		return fmt.Sprintf("%s: %s", e.Class, e.Message)
	}
	return e.Message
}

// StackText renders the remote stack frames one per line for log output.
func (e *RemoteError) StackText() string {
	if e == nil || len(e.Stack) == 0 {
		return ""
	}
	return strings.Join(e.Stack, "\n")
}
