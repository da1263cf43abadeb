package host

import (
	"fmt"
	"math"

	derrors "github.com/akzaidi/sparkapi/domain/errors"
	"github.com/akzaidi/sparkapi/wireformat"
)

// refBearer is anything that can surrender an ObjectRef: references
// themselves and every specialized view.
type refBearer interface {
	Underlying() *ObjectRef
}

// encodeArgs converts host-native call arguments to their wire form.
// References are passed by handle token, primitives by encoded value; the
// mapping is total over the supported types and deterministic.
func (c *Connection) encodeArgs(args []any) ([]wireformat.Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]wireformat.Value, len(args))
	for i, arg := range args {
		v, err := c.encodeArg(arg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c *Connection) encodeArg(arg any) (wireformat.Value, error) {
	switch v := arg.(type) {
	case nil:
		return wireformat.Null(), nil
	case bool:
		return wireformat.BoolValue(v), nil
	case int:
		return wireformat.IntValue(int64(v)), nil
	case int8:
		return wireformat.IntValue(int64(v)), nil
	case int16:
		return wireformat.IntValue(int64(v)), nil
	case int32:
		return wireformat.IntValue(int64(v)), nil
	case int64:
		return wireformat.IntValue(v), nil
	case uint:
		return c.encodeUint(uint64(v))
	case uint8:
		return wireformat.IntValue(int64(v)), nil
	case uint16:
		return wireformat.IntValue(int64(v)), nil
	case uint32:
		return wireformat.IntValue(int64(v)), nil
	case uint64:
		return c.encodeUint(v)
	case float32:
		return wireformat.FloatValue(float64(v)), nil
	case float64:
		return wireformat.FloatValue(v), nil
	case string:
		return wireformat.StringValue(v), nil
	case wireformat.Value:
		return v, nil
	case []any:
		items := make([]wireformat.Value, len(v))
		for i, item := range v {
			enc, err := c.encodeArg(item)
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
	case []int:
		items := make([]wireformat.Value, len(v))
		for i, n := range v {
			items[i] = wireformat.IntValue(int64(n))
		}
		return wireformat.ArrayValue(items), nil
	case []int64:
		items := make([]wireformat.Value, len(v))
		for i, n := range v {
			items[i] = wireformat.IntValue(n)
		}
		return wireformat.ArrayValue(items), nil
	case []float64:
		items := make([]wireformat.Value, len(v))
		for i, f := range v {
			items[i] = wireformat.FloatValue(f)
		}
		return wireformat.ArrayValue(items), nil
	case []bool:
		items := make([]wireformat.Value, len(v))
		for i, b := range v {
			items[i] = wireformat.BoolValue(b)
		}
		return wireformat.ArrayValue(items), nil
	case refBearer:
		ref := v.Underlying()
		if err := c.checkRef(ref); err != nil {
			return wireformat.Value{}, err
		}
		return wireformat.RefValue(ref.handle), nil
	default:
		return wireformat.Value{}, &derrors.CodecError{
			Err:       fmt.Errorf("no wire representation"),
			Operation: "encode",
			GoType:    fmt.Sprintf("%T", arg),
		}
	}
}

func (c *Connection) encodeUint(v uint64) (wireformat.Value, error) {
	if v > math.MaxInt64 {
		return wireformat.Value{}, &derrors.CodecError{
			Err:       fmt.Errorf("%d overflows the wire integer range", v),
			Operation: "encode",
			GoType:    "uint64",
		}
	}
	return wireformat.IntValue(int64(v)), nil
}

// decodeValue converts a tagged wire value back to a host-native one.
// Integers come back as int64 and floats as float64, exactly as sent, with
// no width or precision drift. Reference values are bound to this Connection
// and registered before being returned.
func (c *Connection) decodeValue(v wireformat.Value) (any, error) {
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
			decoded, err := c.decodeValue(item)
			if err != nil {
				return nil, err
			}
			items[i] = decoded
		}
		return items, nil
	case wireformat.KindRef:
		if v.Handle == "" {
			return nil, &derrors.CodecError{
				Err:       fmt.Errorf("ref value carried no handle"),
				Operation: "decode",
			}
		}
		return c.adoptRef(v.Handle, "", ""), nil
	default:
		return nil, &derrors.CodecError{
			Err:       fmt.Errorf("unknown value kind %q", v.Kind),
			Operation: "decode",
		}
	}
}
