package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistanceStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AssistanceStatus
		to      AssistanceStatus
		allowed bool
	}{
		{StatusPending, StatusDispatched, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusDispatched, StatusCompleted, true},
		{StatusDispatched, StatusCancelled, true},
		{StatusDispatched, StatusPending, false},
		{StatusCompleted, StatusDispatched, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusDispatched, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestTransitionTo_StampsTimestamps(t *testing.T) {
	req := AssistanceRequest{
		ReferenceNumber: "RSA-202608291430-0042-GUL",
		Status:          StatusPending,
	}

	require.NoError(t, req.TransitionTo(StatusDispatched))
	assert.Equal(t, StatusDispatched, req.Status)
	require.NotNil(t, req.DispatchedAt)
	assert.Nil(t, req.CompletedAt)

	require.NoError(t, req.TransitionTo(StatusCompleted))
	assert.Equal(t, StatusCompleted, req.Status)
	require.NotNil(t, req.CompletedAt)
	assert.False(t, req.CompletedAt.Before(*req.DispatchedAt))
}

func TestTransitionTo_RejectsBackwardsMove(t *testing.T) {
	req := AssistanceRequest{
		ReferenceNumber: "RSA-202608291430-0042-GUL",
		Status:          StatusCompleted,
	}

	err := req.TransitionTo(StatusPending)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status transition")
	assert.Equal(t, StatusCompleted, req.Status, "a refused transition must not mutate the record")
}

func TestTransitionTo_CancelLeavesTimestampsEmpty(t *testing.T) {
	req := AssistanceRequest{Status: StatusPending}

	require.NoError(t, req.TransitionTo(StatusCancelled))
	assert.Equal(t, StatusCancelled, req.Status)
	assert.Nil(t, req.DispatchedAt)
	assert.Nil(t, req.CompletedAt)
}
