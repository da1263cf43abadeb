package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	derrors "github.com/akzaidi/sparkapi/domain/errors"
	"github.com/akzaidi/sparkapi/wireformat"
)

// validate is a package-level singleton; constructing a validator per call is
// expensive and reuse is the recommended pattern.
var validate = validator.New()

// Invoke calls method on a remote object and returns the decoded result: a
// host-native primitive, an ObjectRef for object results, or nil for void.
// The call blocks until the response arrives or the channel fails.
func (c *Connection) Invoke(ctx context.Context, target *ObjectRef, method string, args ...any) (any, error) {
	if err := c.checkRef(target); err != nil {
		return nil, err
	}
	req := &wireformat.InvocationRequest{
		ConnectionID: c.id,
		TargetHandle: target.handle,
		Method:       method,
	}
	return c.invoke(ctx, req, args)
}

// InvokeNew constructs a new remote object of className and returns its
// reference, registered against this Connection before it is returned.
func (c *Connection) InvokeNew(ctx context.Context, className string, args ...any) (*ObjectRef, error) {
	req := &wireformat.InvocationRequest{
		ConnectionID: c.id,
		ClassName:    className,
	}
	result, err := c.invoke(ctx, req, args)
	if err != nil {
		return nil, err
	}
	ref, ok := result.(*ObjectRef)
	if !ok {
		return nil, &derrors.CodecError{
			Err:       fmt.Errorf("constructor %s returned %T, not a reference", className, result),
			Operation: "decode",
		}
	}
	return ref, nil
}

// InvokeStatic calls a static method on className.
func (c *Connection) InvokeStatic(ctx context.Context, className, method string, args ...any) (any, error) {
	req := &wireformat.InvocationRequest{
		ConnectionID: c.id,
		ClassName:    className,
		Method:       method,
	}
	return c.invoke(ctx, req, args)
}

// invoke finishes a partially built request (arguments, context metadata),
// runs it through the round trip, and decodes the tagged result.
func (c *Connection) invoke(ctx context.Context, req *wireformat.InvocationRequest, args []any) (any, error) {
	encoded, err := c.encodeArgs(args)
	if err != nil {
		return nil, err
	}
	req.Args = encoded

	resp, err := c.call(ctx, req)
	if err != nil {
		return nil, err
	}

	switch resp.Kind {
	case wireformat.ResultVoid:
		return nil, nil
	case wireformat.ResultValue:
		if resp.Value == nil {
			return nil, &derrors.CodecError{
				Err:       fmt.Errorf("value result for %s carried no value", req.Target()),
				Operation: "decode",
			}
		}
		return c.decodeValue(*resp.Value)
	case wireformat.ResultReference:
		if resp.Handle == "" {
			return nil, &derrors.CodecError{
				Err:       fmt.Errorf("reference result for %s carried no handle", req.Target()),
				Operation: "decode",
			}
		}
		if resp.Classification != "" && !c.views.Known(resp.Classification) {
			c.logger.Warn("unknown classification on reference result",
				slog.String("classification", resp.Classification),
				slog.String("class", resp.Class))
		}
		return c.adoptRef(resp.Handle, resp.Class, resp.Classification), nil
	case wireformat.ResultError:
		return nil, &derrors.RemoteInvocationError{Remote: resp.Error, Target: req.Target()}
	default:
		return nil, &derrors.CodecError{
			Err:       fmt.Errorf("unknown result kind %q for %s", resp.Kind, req.Target()),
			Operation: "decode",
		}
	}
}

// call performs one validated round trip. Requests are serialized: one
// logical call per Connection at a time.
func (c *Connection) call(ctx context.Context, req *wireformat.InvocationRequest) (*wireformat.InvocationResponse, error) {
	if c.closed.Load() {
		return nil, &derrors.ConnectionClosedError{ConnectionID: c.id, Operation: req.Target()}
	}

	req.Context = contextWire(ctx)
	if shape := req.Shape(); shape == wireformat.ShapeInvalid {
		return nil, &derrors.CodecError{
			Err:       fmt.Errorf("request %s has inconsistent dispatch fields", req.Target()),
			Operation: "validate",
		}
	}
	if err := validate.Struct(req); err != nil {
		return nil, &derrors.CodecError{Err: err, Operation: "validate"}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &derrors.CodecError{Err: err, Operation: "encode"}
	}

	start := time.Now()
	c.callMu.Lock()
	raw, err := c.transport.Send(ctx, payload)
	c.callMu.Unlock()
	if err != nil {
		// The remote runtime may have partially executed the call; the
		// effect on remote state is indeterminate.
		return nil, &derrors.ConnectionError{Err: err, ConnectionID: c.id, Operation: req.Target()}
	}

	var resp wireformat.InvocationResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &derrors.CodecError{Err: err, Operation: "decode"}
	}

	c.logger.Debug("invocation completed",
		slog.String("target", req.Target()),
		slog.String("shape", req.Shape().String()),
		slog.String("result", resp.Kind),
		slog.Duration("elapsed", time.Since(start)))
	return &resp, nil
}

// release tells the remote runtime to forget a handle.
func (c *Connection) release(ctx context.Context, handle string) error {
	req := &wireformat.InvocationRequest{
		ConnectionID: c.id,
		TargetHandle: handle,
		Release:      true,
	}
	resp, err := c.call(ctx, req)
	if err != nil {
		return err
	}
	if resp.Kind == wireformat.ResultError {
		return &derrors.RemoteInvocationError{Remote: resp.Error, Target: req.Target()}
	}
	return nil
}

func contextWire(ctx context.Context) wireformat.ContextWire {
	wire := wireformat.ContextWire{RequestID: uuid.NewString()}
	if deadline, ok := ctx.Deadline(); ok {
		wire.Deadline = &deadline
		if remaining := time.Until(deadline); remaining > 0 {
			wire.TimeoutMs = remaining.Milliseconds()
		}
	}
	return wire
}
