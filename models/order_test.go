package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	assert.NoError(t, CanTransition(StatusPending, StatusPreparing))
	assert.NoError(t, CanTransition(StatusPreparing, StatusReady))
	assert.NoError(t, CanTransition(StatusReady, StatusDelivered))

	// Skipping ahead is allowed.
	assert.NoError(t, CanTransition(StatusPending, StatusDelivered))
	assert.NoError(t, CanTransition(StatusPreparing, StatusDelivered))

	// Backward and same-status moves are not.
	assert.ErrorIs(t, CanTransition(StatusPreparing, StatusPending), ErrBackwardTransition)
	assert.ErrorIs(t, CanTransition(StatusDelivered, StatusReady), ErrBackwardTransition)
	assert.ErrorIs(t, CanTransition(StatusPending, StatusPending), ErrBackwardTransition)
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.Error(t, CanTransition("pending", "cancelled"))
	assert.Error(t, CanTransition("cancelled", "pending"))
	assert.False(t, ValidStatus("cancelled"))
	assert.True(t, ValidStatus(StatusReady))
}

func TestAllItemsReady(t *testing.T) {
	order := Order{}
	assert.False(t, order.AllItemsReady(), "empty order is never all ready")

	order.Items = []OrderItem{
		{ItemID: "a", Ready: true},
		{ItemID: "b", Ready: false},
	}
	assert.False(t, order.AllItemsReady())

	order.Items[1].Ready = true
	assert.True(t, order.AllItemsReady())
}
