package host

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/akzaidi/sparkapi/domain/errors"
	"github.com/akzaidi/sparkapi/internal/testutil"
	"github.com/akzaidi/sparkapi/wireformat"
)

func TestInvokeNewThenInvoke(t *testing.T) {
	conn, _ := newTestConnection(t)
	ctx := context.Background()

	ref, err := conn.InvokeNew(ctx, "java.math.BigInteger", "1000000000")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "java.math.BigInteger", ref.RemoteClass())

	result, err := ref.Invoke(ctx, "longValue")
	require.NoError(t, err)
	assert.Equal(t, int64(1000000000), result)
}

func TestInvokeStatic(t *testing.T) {
	conn, _ := newTestConnection(t)

	result, err := conn.InvokeStatic(context.Background(), "java.lang.Math", "hypot", 10, 20)
	require.NoError(t, err)
	require.IsType(t, float64(0), result)
	assert.InDelta(t, 22.360679, result.(float64), 1e-6)
}

func TestInvokeVoidResult(t *testing.T) {
	conn, _ := newTestConnection(t)

	result, err := conn.InvokeStatic(context.Background(), "test.Echo", "nothing")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReferenceArgumentsPassByHandle(t *testing.T) {
	conn, rt := newTestConnection(t)
	ctx := context.Background()

	a, err := conn.InvokeNew(ctx, "java.math.BigInteger", "40")
	require.NoError(t, err)
	b, err := conn.InvokeNew(ctx, "java.math.BigInteger", "2")
	require.NoError(t, err)

	sum, err := conn.Invoke(ctx, a, "add", b)
	require.NoError(t, err)
	sumRef, ok := sum.(*ObjectRef)
	require.True(t, ok, "object result decodes to a reference, got %T", sum)
	assert.Same(t, conn, sumRef.OwningConnection())

	value, err := sumRef.Invoke(ctx, "longValue")
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)

	// The wire carried b as a handle token, not a value.
	requests := rt.Requests()
	addReq := requests[len(requests)-2]
	require.Len(t, addReq.Args, 1)
	assert.Equal(t, wireformat.KindRef, addReq.Args[0].Kind)
	assert.Equal(t, b.Handle(), addReq.Args[0].Handle)
}

func TestRemoteExceptionSurfacesAsRemoteInvocationError(t *testing.T) {
	conn, _ := newTestConnection(t)
	ctx := context.Background()

	_, err := conn.InvokeNew(ctx, "java.math.BigInteger", "not a number")
	var remoteErr *derrors.RemoteInvocationError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "new java.math.BigInteger", remoteErr.Target)
	require.NotNil(t, remoteErr.Remote)
	assert.Equal(t, "java.lang.NumberFormatException", remoteErr.Remote.Class)
	assert.NotEmpty(t, remoteErr.Remote.Stack)

	_, err = conn.InvokeStatic(ctx, "test.Echo", "boom")
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "java.lang.IllegalStateException", remoteErr.Remote.Class)
	assert.Equal(t, "boom", remoteErr.Remote.Message)

	detail := testutil.RequireDetailType(t, err, "remote")
	require.NotNil(t, detail.Remote)
	assert.Equal(t, "boom", detail.Remote.Message)
}

func TestUnknownClassSurfacesAsRemoteError(t *testing.T) {
	conn, _ := newTestConnection(t)

	_, err := conn.InvokeNew(context.Background(), "java.lang.Nope")
	var remoteErr *derrors.RemoteInvocationError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "java.lang.ClassNotFoundException", remoteErr.Remote.Class)
}

func TestChannelFailureMidCall(t *testing.T) {
	conn, rt := newTestConnection(t)
	ctx := context.Background()

	rt.FailNext(fmt.Errorf("broken pipe"))
	_, err := conn.InvokeStatic(ctx, "java.lang.Math", "hypot", 3, 4)
	var connErr *derrors.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, conn.ID(), connErr.ConnectionID)
	assert.Contains(t, connErr.Operation, "hypot")
	testutil.RequireDetailType(t, err, "connection")

	// The channel failure is not sticky for the connection itself; the
	// embedding decides whether to keep using it.
	result, err := conn.InvokeStatic(ctx, "java.lang.Math", "hypot", 3, 4)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, result.(float64), 1e-9)
}

func TestSequentialCallsArriveInOrder(t *testing.T) {
	conn, rt := newTestConnection(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := conn.InvokeStatic(ctx, "test.Echo", "identity", i)
		require.NoError(t, err)
	}

	var seen []int64
	for _, req := range rt.Requests() {
		if req.ClassName == "test.Echo" {
			require.Len(t, req.Args, 1)
			seen = append(seen, req.Args[0].Int)
		}
	}
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, seen)
}

func TestEmptyMethodNameRejectedBeforeSend(t *testing.T) {
	conn, rt := newTestConnection(t)
	ctx := context.Background()

	before := len(rt.Requests())
	_, err := conn.Invoke(ctx, conn.Entry(), "")
	var codecErr *derrors.CodecError
	require.ErrorAs(t, err, &codecErr)
	assert.Equal(t, "validate", codecErr.Operation)
	assert.Len(t, rt.Requests(), before, "doomed request was never sent")
}

func TestRequestsCarryContextDeadline(t *testing.T) {
	conn, rt := newTestConnection(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := conn.InvokeStatic(ctx, "test.Echo", "identity", 1)
	require.NoError(t, err)

	requests := rt.Requests()
	last := requests[len(requests)-1]
	assert.NotEmpty(t, last.Context.RequestID)
	require.NotNil(t, last.Context.Deadline)
	assert.Positive(t, last.Context.TimeoutMs)
}
