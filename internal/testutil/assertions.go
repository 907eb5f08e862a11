// Package testutil provides fakes and assertions shared by permflow tests.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/reglet-dev/permflow/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertGranted asserts a successful, all-granted result.
func AssertGranted(t *testing.T, outcome entities.Outcome, err error) {
	t.Helper()
	require.NoError(t, err)
	assert.True(t, outcome.IsGranted(), "expected granted, got %s", outcome)
	assert.Empty(t, outcome.Denied)
}

// AssertDenied asserts a Denied outcome listing exactly want, in order.
func AssertDenied(t *testing.T, want []entities.Capability, outcome entities.Outcome, err error) {
	t.Helper()
	require.NoError(t, err)
	require.Equal(t, entities.OutcomeDenied, outcome.Kind, "expected denied, got %s", outcome)
	assert.Equal(t, want, outcome.Denied)
}

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}
