package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/akzaidi/sparkapi/domain/errors"
)

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting.
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...any) {
	t.Helper()
	var expectedObj, actualObj any
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedObj), "expected value is not valid JSON")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualObj), "actual value is not valid JSON")
	assert.Equal(t, expectedObj, actualObj, msgAndArgs...)
}

// RequireDetailType asserts that err converts to a structured Detail of the
// given type.
func RequireDetailType(t *testing.T, err error, wantType string) *derrors.Detail {
	t.Helper()
	require.Error(t, err)
	detail := derrors.ToDetail(err)
	require.NotNil(t, detail)
	require.Equal(t, wantType, detail.Type, "detail: %+v", detail)
	return detail
}
