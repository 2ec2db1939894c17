package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueStatusTransitions(t *testing.T) {
	require.True(t, IssueStatusProcessing.CanTransitionTo(IssueStatusConfirmed))
	require.True(t, IssueStatusProcessing.CanTransitionTo(IssueStatusPostponed))
	require.False(t, IssueStatusProcessing.CanTransitionTo(IssueStatusDelivered))

	require.True(t, IssueStatusConfirmed.CanTransitionTo(IssueStatusDelivered))
	require.False(t, IssueStatusConfirmed.CanTransitionTo(IssueStatusPostponed))
	require.False(t, IssueStatusConfirmed.CanTransitionTo(IssueStatusProcessing))

	require.False(t, IssueStatusDelivered.CanTransitionTo(IssueStatusProcessing))
	require.False(t, IssueStatusPostponed.CanTransitionTo(IssueStatusConfirmed))
}

func TestIssueStatusTerminal(t *testing.T) {
	require.False(t, IssueStatusProcessing.IsTerminal())
	require.False(t, IssueStatusConfirmed.IsTerminal())
	require.True(t, IssueStatusDelivered.IsTerminal())
	require.True(t, IssueStatusPostponed.IsTerminal())
}

func TestIssueStatusJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(IssueStatusConfirmed)
	require.NoError(t, err)
	require.JSONEq(t, `"Confirmed"`, string(data))

	var s IssueStatus
	require.NoError(t, json.Unmarshal([]byte(`"Postponed"`), &s))
	require.Equal(t, IssueStatusPostponed, s)

	// Numeric form is accepted too.
	require.NoError(t, json.Unmarshal([]byte(`2`), &s))
	require.Equal(t, IssueStatusDelivered, s)
}
