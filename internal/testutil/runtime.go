// Package testutil provides shared test helpers, most importantly FakeRuntime:
// an in-memory remote runtime that speaks the bridge wire protocol over the
// Transport port, with a small arena of objects and a handful of registered
// classes. It lets invocation tests run end-to-end without a real runtime
// process.
package testutil

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/akzaidi/sparkapi/domain/entities"
	"github.com/akzaidi/sparkapi/domain/ports"
	"github.com/akzaidi/sparkapi/wireformat"
)

// FakeClass describes one class the fake runtime can construct and dispatch
// on. Method and static functions receive decoded host-native arguments;
// reference arguments arrive as the referenced object's state.
type FakeClass struct {
	Name           string
	Classification string
	Constructor    func(args []any) (any, error)
	Methods        map[string]func(recv any, args []any) (any, error)
	Statics        map[string]func(args []any) (any, error)
}

// RemoteObject is returned by a class function to signal that the result is
// a newly created remote object rather than a primitive value.
type RemoteObject struct {
	Class string
	State any
}

type fakeObject struct {
	class string
	state any
}

// SessionClassName is the class of the entry-point object FakeRuntime hands
// out at dial time.
const SessionClassName = "test.Session"

// FakeRuntime implements ports.Dialer and ports.Transport over an in-memory
// object arena.
type FakeRuntime struct {
	mu       sync.Mutex
	classes  map[string]*FakeClass
	objects  map[string]*fakeObject
	requests []wireformat.InvocationRequest
	nextID   int
	closed   bool
	failErr  error
}

// NewFakeRuntime builds a runtime knowing the given classes plus the
// built-in session class.
func NewFakeRuntime(classes ...*FakeClass) *FakeRuntime {
	rt := &FakeRuntime{
		classes: make(map[string]*FakeClass),
		objects: make(map[string]*fakeObject),
	}
	rt.AddClass(&FakeClass{
		Name:           SessionClassName,
		Classification: entities.ClassificationSessionContext,
		Methods: map[string]func(recv any, args []any) (any, error){
			"version": func(recv any, args []any) (any, error) {
				return "1.0-test", nil
			},
			"target": func(recv any, args []any) (any, error) {
				return recv, nil
			},
			"setAppName": func(recv any, args []any) (any, error) {
				if len(args) != 1 {
					return nil, fmt.Errorf("setAppName takes one argument, got %d", len(args))
				}
				if _, ok := args[0].(string); !ok {
					return nil, fmt.Errorf("setAppName takes a string, got %T", args[0])
				}
				return nil, nil
			},
		},
	})
	for _, c := range classes {
		rt.AddClass(c)
	}
	return rt
}

// AddClass registers another class.
func (rt *FakeRuntime) AddClass(c *FakeClass) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.classes[c.Name] = c
}

// FailNext makes the next Send fail with err, simulating a channel death.
func (rt *FakeRuntime) FailNext(err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.failErr = err
}

// Requests returns every request received so far, in arrival order.
func (rt *FakeRuntime) Requests() []wireformat.InvocationRequest {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	out := make([]wireformat.InvocationRequest, len(rt.requests))
	copy(out, rt.requests)
	return out
}

// LiveObjects returns how many objects the arena currently holds.
func (rt *FakeRuntime) LiveObjects() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.objects)
}

// Closed reports whether the transport was torn down.
func (rt *FakeRuntime) Closed() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.closed
}

// Dial implements ports.Dialer. The handshake's entry point is a fresh
// session object whose state is the dial target.
func (rt *FakeRuntime) Dial(ctx context.Context, target string) (ports.Transport, *ports.Handshake, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.closed {
		return nil, nil, fmt.Errorf("runtime is shut down")
	}
	handle := rt.allocateLocked(SessionClassName, target)
	return rt, &ports.Handshake{
		EntryHandle:    handle,
		EntryClass:     SessionClassName,
		Classification: entities.ClassificationSessionContext,
	}, nil
}

// Close implements ports.Transport.
func (rt *FakeRuntime) Close(ctx context.Context) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.closed = true
	return nil
}

// Send implements ports.Transport: one request in, one response out.
func (rt *FakeRuntime) Send(ctx context.Context, request []byte) ([]byte, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.failErr != nil {
		err := rt.failErr
		rt.failErr = nil
		return nil, err
	}
	if rt.closed {
		return nil, fmt.Errorf("transport is closed")
	}

	var req wireformat.InvocationRequest
	if err := json.Unmarshal(request, &req); err != nil {
		return nil, fmt.Errorf("malformed request: %w", err)
	}
	rt.requests = append(rt.requests, req)

	resp := rt.dispatchLocked(&req)
	return json.Marshal(resp)
}

func (rt *FakeRuntime) dispatchLocked(req *wireformat.InvocationRequest) *wireformat.InvocationResponse {
	args, err := rt.decodeArgsLocked(req.Args)
	if err != nil {
		return errorResponse(err)
	}

	switch req.Shape() {
	case wireformat.ShapeRelease:
		delete(rt.objects, req.TargetHandle)
		return &wireformat.InvocationResponse{Kind: wireformat.ResultVoid}

	case wireformat.ShapeInstance:
		obj, ok := rt.objects[req.TargetHandle]
		if !ok {
			return errorResponse(&wireformat.RemoteError{
				Message: fmt.Sprintf("no object for handle %s", req.TargetHandle),
				Class:   "java.lang.IllegalStateException",
			})
		}
		class := rt.classes[obj.class]
		fn, ok := class.Methods[req.Method]
		if !ok {
			return errorResponse(&wireformat.RemoteError{
				Message: fmt.Sprintf("%s.%s", obj.class, req.Method),
				Class:   "java.lang.NoSuchMethodException",
			})
		}
		result, err := fn(obj.state, args)
		if err != nil {
			return errorResponse(err)
		}
		return rt.resultResponseLocked(result)

	case wireformat.ShapeConstructor:
		class, ok := rt.classes[req.ClassName]
		if !ok || class.Constructor == nil {
			return errorResponse(&wireformat.RemoteError{
				Message: req.ClassName,
				Class:   "java.lang.ClassNotFoundException",
			})
		}
		state, err := class.Constructor(args)
		if err != nil {
			return errorResponse(err)
		}
		return rt.referenceResponseLocked(class.Name, state)

	case wireformat.ShapeStatic:
		class, ok := rt.classes[req.ClassName]
		if !ok {
			return errorResponse(&wireformat.RemoteError{
				Message: req.ClassName,
				Class:   "java.lang.ClassNotFoundException",
			})
		}
		fn, ok := class.Statics[req.Method]
		if !ok {
			return errorResponse(&wireformat.RemoteError{
				Message: fmt.Sprintf("%s.%s", req.ClassName, req.Method),
				Class:   "java.lang.NoSuchMethodException",
			})
		}
		result, err := fn(args)
		if err != nil {
			return errorResponse(err)
		}
		return rt.resultResponseLocked(result)

	default:
		return errorResponse(&wireformat.RemoteError{
			Message: "inconsistent dispatch fields",
			Class:   "java.lang.IllegalArgumentException",
		})
	}
}

func (rt *FakeRuntime) resultResponseLocked(result any) *wireformat.InvocationResponse {
	if result == nil {
		return &wireformat.InvocationResponse{Kind: wireformat.ResultVoid}
	}
	if obj, ok := result.(RemoteObject); ok {
		return rt.referenceResponseLocked(obj.Class, obj.State)
	}
	value, err := encodeFakeValue(result)
	if err != nil {
		return errorResponse(err)
	}
	return &wireformat.InvocationResponse{Kind: wireformat.ResultValue, Value: &value}
}

func (rt *FakeRuntime) referenceResponseLocked(className string, state any) *wireformat.InvocationResponse {
	classification := entities.ClassificationObject
	if class, ok := rt.classes[className]; ok && class.Classification != "" {
		classification = class.Classification
	}
	handle := rt.allocateLocked(className, state)
	return &wireformat.InvocationResponse{
		Kind:           wireformat.ResultReference,
		Handle:         handle,
		Class:          className,
		Classification: classification,
	}
}

func (rt *FakeRuntime) allocateLocked(className string, state any) string {
	rt.nextID++
	handle := fmt.Sprintf("obj-%d", rt.nextID)
	rt.objects[handle] = &fakeObject{class: className, state: state}
	return handle
}

func (rt *FakeRuntime) decodeArgsLocked(args []wireformat.Value) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		decoded, err := rt.decodeValueLocked(arg)
		if err != nil {
			return nil, err
		}
		out[i] = decoded
	}
	return out, nil
}

func (rt *FakeRuntime) decodeValueLocked(v wireformat.Value) (any, error) {
	switch v.Kind {
	case wireformat.KindNull:
		return nil, nil
	case wireformat.KindBool:
		return v.Bool, nil
	case wireformat.KindInt:
		return v.Int, nil
	case wireformat.KindFloat:
		return v.Float, nil
	case wireformat.KindString:
		return v.Str, nil
	case wireformat.KindArray:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			decoded, err := rt.decodeValueLocked(item)
			if err != nil {
				return nil, err
			}
			items[i] = decoded
		}
		return items, nil
	case wireformat.KindRef:
		obj, ok := rt.objects[v.Handle]
		if !ok {
			return nil, &wireformat.RemoteError{
				Message: fmt.Sprintf("no object for handle %s", v.Handle),
				Class:   "java.lang.IllegalStateException",
			}
		}
		return obj.state, nil
	default:
		return nil, &wireformat.RemoteError{
			Message: fmt.Sprintf("unknown value kind %q", v.Kind),
			Class:   "java.lang.IllegalArgumentException",
		}
	}
}

func encodeFakeValue(result any) (wireformat.Value, error) {
	switch v := result.(type) {
	case nil:
		return wireformat.Null(), nil
	case bool:
		return wireformat.BoolValue(v), nil
	case int:
		return wireformat.IntValue(int64(v)), nil
	case int64:
		return wireformat.IntValue(v), nil
	case float64:
		return wireformat.FloatValue(v), nil
	case string:
		return wireformat.StringValue(v), nil
	case []any:
		items := make([]wireformat.Value, len(v))
		for i, item := range v {
			enc, err := encodeFakeValue(item)
			if err != nil {
				return wireformat.Value{}, err
			}
			items[i] = enc
		}
		return wireformat.ArrayValue(items), nil
	case []string:
		items := make([]wireformat.Value, len(v))
		for i, s := range v {
			items[i] = wireformat.StringValue(s)
		}
		return wireformat.ArrayValue(items), nil
	case wireformat.Value:
		return v, nil
	default:
		return wireformat.Value{}, &wireformat.RemoteError{
			Message: fmt.Sprintf("fake runtime cannot encode %T", result),
			Class:   "java.lang.IllegalArgumentException",
		}
	}
}

func errorResponse(err error) *wireformat.InvocationResponse {
	var remote *wireformat.RemoteError
	if !stderrors.As(err, &remote) {
		remote = &wireformat.RemoteError{
			Message: err.Error(),
			Class:   "java.lang.RuntimeException",
			Stack:   []string{"at test.Runtime.dispatch(Runtime.java:1)"},
		}
	}
	return &wireformat.InvocationResponse{Kind: wireformat.ResultError, Error: remote}
}

// StandardClasses returns the classes most tests want: a big-integer class,
// a math class with statics, a tabular dataset class, and an echo class for
// codec round trips.
func StandardClasses() []*FakeClass {
	return []*FakeClass{
		{
			Name: "java.math.BigInteger",
			Constructor: func(args []any) (any, error) {
				if len(args) != 1 {
					return nil, fmt.Errorf("BigInteger takes one argument, got %d", len(args))
				}
				text, ok := args[0].(string)
				if !ok {
					return nil, fmt.Errorf("BigInteger takes a string, got %T", args[0])
				}
				n, err := strconv.ParseInt(text, 10, 64)
				if err != nil {
					return nil, &wireformat.RemoteError{
						Message: fmt.Sprintf("For input string: %q", text),
						Class:   "java.lang.NumberFormatException",
						Stack:   []string{"at java.math.BigInteger.<init>(BigInteger.java:470)"},
					}
				}
				return n, nil
			},
			Methods: map[string]func(recv any, args []any) (any, error){
				"longValue": func(recv any, args []any) (any, error) {
					return recv.(int64), nil
				},
				"add": func(recv any, args []any) (any, error) {
					other, ok := args[0].(int64)
					if !ok {
						return nil, fmt.Errorf("add takes a BigInteger, got %T", args[0])
					}
					return RemoteObject{Class: "java.math.BigInteger", State: recv.(int64) + other}, nil
				},
				"toString": func(recv any, args []any) (any, error) {
					return strconv.FormatInt(recv.(int64), 10), nil
				},
			},
		},
		{
			Name: "java.lang.Math",
			Statics: map[string]func(args []any) (any, error){
				"hypot": func(args []any) (any, error) {
					if len(args) != 2 {
						return nil, fmt.Errorf("hypot takes two arguments, got %d", len(args))
					}
					return math.Hypot(asFloat(args[0]), asFloat(args[1])), nil
				},
				"abs": func(args []any) (any, error) {
					return math.Abs(asFloat(args[0])), nil
				},
			},
		},
		{
			Name:           "org.apache.spark.sql.Dataset",
			Classification: entities.ClassificationDataFrame,
			Constructor: func(args []any) (any, error) {
				columns := make([]string, len(args))
				for i, arg := range args {
					s, ok := arg.(string)
					if !ok {
						return nil, fmt.Errorf("column name must be a string, got %T", arg)
					}
					columns[i] = s
				}
				return columns, nil
			},
			Methods: map[string]func(recv any, args []any) (any, error){
				"columns": func(recv any, args []any) (any, error) {
					return recv.([]string), nil
				},
				"count": func(recv any, args []any) (any, error) {
					return int64(0), nil
				},
			},
		},
		{
			Name: "test.Echo",
			Statics: map[string]func(args []any) (any, error){
				"identity": func(args []any) (any, error) {
					if len(args) != 1 {
						return nil, fmt.Errorf("identity takes one argument, got %d", len(args))
					}
					return args[0], nil
				},
				"nothing": func(args []any) (any, error) {
					return nil, nil
				},
				"boom": func(args []any) (any, error) {
					return nil, &wireformat.RemoteError{
						Message: "boom",
						Class:   "java.lang.IllegalStateException",
						Stack:   []string{"at test.Echo.boom(Echo.java:10)"},
					}
				},
			},
		},
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return math.NaN()
	}
}
