package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akzaidi/sparkapi/domain/entities"
	derrors "github.com/akzaidi/sparkapi/domain/errors"
)

func TestAsDataFrameMatchingClassification(t *testing.T) {
	conn, _ := newTestConnection(t)
	ctx := context.Background()

	ref, err := conn.InvokeNew(ctx, "org.apache.spark.sql.Dataset", "name", "age")
	require.NoError(t, err)
	assert.Equal(t, entities.ClassificationDataFrame, ref.Classification())

	df, err := AsDataFrame(ref)
	require.NoError(t, err)

	// Conversion is structural: same handle, same connection.
	assert.True(t, df.Underlying().Equal(ref))
	assert.Same(t, conn, df.OwningConnection())

	columns, err := df.Invoke(ctx, "columns")
	require.NoError(t, err)
	assert.Equal(t, []any{"name", "age"}, columns)
}

func TestAsDataFrameMismatchedClassification(t *testing.T) {
	conn, _ := newTestConnection(t)

	ref, err := conn.InvokeNew(context.Background(), "java.math.BigInteger", "1")
	require.NoError(t, err)

	_, err = AsDataFrame(ref)
	var mismatch *derrors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, entities.ClassificationDataFrame, mismatch.Want)
	assert.Equal(t, entities.ClassificationObject, mismatch.Got)
}

func TestAsSessionContext(t *testing.T) {
	conn, _ := newTestConnection(t)
	ctx := context.Background()

	sc, err := AsSessionContext(conn.Entry())
	require.NoError(t, err)
	assert.Same(t, conn, sc.OwningConnection())
	assert.True(t, sc.Underlying().Equal(conn.Entry()))

	version, err := sc.Invoke(ctx, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.0-test", version)

	df, err := conn.InvokeNew(ctx, "org.apache.spark.sql.Dataset")
	require.NoError(t, err)
	_, err = AsSessionContext(df)
	var mismatch *derrors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestViewsImplementConnectionHolder(t *testing.T) {
	conn, _ := newTestConnection(t)
	ctx := context.Background()

	ref, err := conn.InvokeNew(ctx, "org.apache.spark.sql.Dataset")
	require.NoError(t, err)
	df, err := AsDataFrame(ref)
	require.NoError(t, err)
	sc, err := AsSessionContext(conn.Entry())
	require.NoError(t, err)

	// A Connection is recoverable from every reference-shaped value.
	for _, holder := range []ConnectionHolder{conn, ref, df, sc} {
		assert.Same(t, conn, holder.OwningConnection())
	}
}

func TestViewsUsableAsArguments(t *testing.T) {
	conn, rt := newTestConnection(t)
	ctx := context.Background()

	ref, err := conn.InvokeNew(ctx, "org.apache.spark.sql.Dataset", "a")
	require.NoError(t, err)
	df, err := AsDataFrame(ref)
	require.NoError(t, err)

	// A view passed as an argument travels as its underlying handle.
	_, err = conn.InvokeStatic(ctx, "test.Echo", "nothing", df)
	require.NoError(t, err)

	requests := rt.Requests()
	last := requests[len(requests)-1]
	require.Len(t, last.Args, 1)
	assert.Equal(t, ref.Handle(), last.Args[0].Handle)
}

func TestNilReferenceConversion(t *testing.T) {
	_, err := AsDataFrame(nil)
	var refErr *derrors.InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
}
