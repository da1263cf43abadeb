package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akzaidi/sparkapi/domain/ports"
	"github.com/akzaidi/sparkapi/wireformat"
)

func dial(t *testing.T) (*FakeRuntime, *ports.Handshake) {
	t.Helper()
	rt := NewFakeRuntime(StandardClasses()...)
	_, hs, err := rt.Dial(context.Background(), "local[*]")
	require.NoError(t, err)
	return rt, hs
}

func send(t *testing.T, rt *FakeRuntime, req wireformat.InvocationRequest) wireformat.InvocationResponse {
	t.Helper()
	payload, err := json.Marshal(req)
	require.NoError(t, err)
	raw, err := rt.Send(context.Background(), payload)
	require.NoError(t, err)
	var resp wireformat.InvocationResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp
}

func TestDispatchConstructorAndMethod(t *testing.T) {
	rt, _ := dial(t)

	resp := send(t, rt, wireformat.InvocationRequest{
		ConnectionID: "c",
		ClassName:    "java.math.BigInteger",
		Args:         []wireformat.Value{wireformat.StringValue("12")},
	})
	require.Equal(t, wireformat.ResultReference, resp.Kind)
	require.NotEmpty(t, resp.Handle)
	assert.Equal(t, "java.math.BigInteger", resp.Class)

	value := send(t, rt, wireformat.InvocationRequest{
		ConnectionID: "c",
		TargetHandle: resp.Handle,
		Method:       "longValue",
	})
	require.Equal(t, wireformat.ResultValue, value.Kind)
	raw, err := json.Marshal(value.Value)
	require.NoError(t, err)
	AssertJSONEqual(t, `{"kind":"int","int":"12"}`, string(raw))
}

func TestDispatchEncodesNullElements(t *testing.T) {
	rt, _ := dial(t)

	// An identity echo of [null, 1] must come back with the null intact.
	resp := send(t, rt, wireformat.InvocationRequest{
		ConnectionID: "c",
		ClassName:    "test.Echo",
		Method:       "identity",
		Args: []wireformat.Value{wireformat.ArrayValue([]wireformat.Value{
			wireformat.Null(),
			wireformat.IntValue(1),
		})},
	})
	require.Equal(t, wireformat.ResultValue, resp.Kind)
	require.NotNil(t, resp.Value)
	require.Len(t, resp.Value.Items, 2)
	assert.Equal(t, wireformat.KindNull, resp.Value.Items[0].Kind)
	assert.Equal(t, wireformat.KindInt, resp.Value.Items[1].Kind)
}

func TestDispatchStaleHandle(t *testing.T) {
	rt, _ := dial(t)

	resp := send(t, rt, wireformat.InvocationRequest{
		ConnectionID: "c",
		TargetHandle: "obj-999",
		Method:       "anything",
	})
	require.Equal(t, wireformat.ResultError, resp.Kind)
	assert.Equal(t, "java.lang.IllegalStateException", resp.Error.Class)
}

func TestDispatchRelease(t *testing.T) {
	rt, hs := dial(t)
	before := rt.LiveObjects()

	resp := send(t, rt, wireformat.InvocationRequest{
		ConnectionID: "c",
		TargetHandle: hs.EntryHandle,
		Release:      true,
	})
	assert.Equal(t, wireformat.ResultVoid, resp.Kind)
	assert.Equal(t, before-1, rt.LiveObjects())
}

func TestSendAfterClose(t *testing.T) {
	rt, _ := dial(t)
	require.NoError(t, rt.Close(context.Background()))

	_, err := rt.Send(context.Background(), []byte(`{}`))
	require.Error(t, err)
}
