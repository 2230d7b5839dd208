package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionRequest_ForwardOnly(t *testing.T) {
	assert.True(t, CanTransitionRequest(RequestStatusPending, RequestStatusInProgress))
	assert.True(t, CanTransitionRequest(RequestStatusInProgress, RequestStatusDone))

	// Назад двигаться нельзя.
	assert.False(t, CanTransitionRequest(RequestStatusInProgress, RequestStatusPending))
	assert.False(t, CanTransitionRequest(RequestStatusDone, RequestStatusInProgress))
	assert.False(t, CanTransitionRequest(RequestStatusDone, RequestStatusPending))
}

func TestCanTransitionRequest_Cancellation(t *testing.T) {
	assert.True(t, CanTransitionRequest(RequestStatusPending, RequestStatusCancelled))
	assert.True(t, CanTransitionRequest(RequestStatusInProgress, RequestStatusCancelled))

	// Из финальных статусов отмена невозможна.
	assert.False(t, CanTransitionRequest(RequestStatusDone, RequestStatusCancelled))
	assert.False(t, CanTransitionRequest(RequestStatusCancelled, RequestStatusCancelled))
}

func TestIsFinalRequestStatus(t *testing.T) {
	assert.False(t, IsFinalRequestStatus(RequestStatusPending))
	assert.False(t, IsFinalRequestStatus(RequestStatusInProgress))
	assert.True(t, IsFinalRequestStatus(RequestStatusDone))
	assert.True(t, IsFinalRequestStatus(RequestStatusCancelled))
}

func TestRequestStatusName(t *testing.T) {
	assert.Equal(t, "pending", RequestStatusName(RequestStatusPending))
	assert.Equal(t, "in_progress", RequestStatusName(RequestStatusInProgress))
	assert.Equal(t, "done", RequestStatusName(RequestStatusDone))
	assert.Equal(t, "cancelled", RequestStatusName(RequestStatusCancelled))
	assert.Equal(t, "unknown", RequestStatusName(42))
}
