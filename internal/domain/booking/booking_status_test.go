package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"waiting to approved", StatusWaiting, StatusApproved, true},
		{"waiting to rejected", StatusWaiting, StatusRejected, true},
		{"waiting to waiting", StatusWaiting, StatusWaiting, false},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"approved to waiting", StatusApproved, StatusWaiting, false},
		{"rejected to approved", StatusRejected, StatusApproved, false},
		{"unknown source", Status("CANCELLED"), StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusWaiting.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusWaiting.IsValid())
	assert.True(t, StatusApproved.IsValid())
	assert.True(t, StatusRejected.IsValid())
	assert.False(t, Status("CANCELLED").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("APPROVED")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	_, err = ParseStatus("approved")
	assert.Error(t, err)

	_, err = ParseStatus("BOGUS")
	assert.Error(t, err)
}
