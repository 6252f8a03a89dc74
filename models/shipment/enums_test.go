package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShipmentStatusIsValid(t *testing.T) {
	for _, status := range GetAllShipmentStatuses() {
		assert.True(t, status.IsValid(), "expected %q to be valid", status)
	}

	invalid := []ShipmentStatus{"", "PENDING", "shipped", "pending ", "picked-up"}
	for _, status := range invalid {
		assert.False(t, status.IsValid(), "expected %q to be invalid", status)
	}
}

func TestShipmentStatusIsTerminalLike(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminalLike())
	assert.True(t, StatusCancelled.IsTerminalLike())
	assert.True(t, StatusReturned.IsTerminalLike())

	assert.False(t, StatusPending.IsTerminalLike())
	assert.False(t, StatusPickedUp.IsTerminalLike())
	assert.False(t, StatusInTransit.IsTerminalLike())
	assert.False(t, StatusOutForDelivery.IsTerminalLike())
}

func TestHumanLabel(t *testing.T) {
	assert.Equal(t, "Out for delivery", StatusOutForDelivery.HumanLabel())
	assert.Equal(t, "Picked up", StatusPickedUp.HumanLabel())
	// Unknown values fall through untouched
	assert.Equal(t, "warp", ShipmentStatus("warp").HumanLabel())
}

func TestServiceTierIsValid(t *testing.T) {
	assert.True(t, TierStandard.IsValid())
	assert.True(t, TierExpress.IsValid())
	assert.True(t, TierOvernight.IsValid())
	assert.False(t, ServiceTier("same_day").IsValid())
}

func TestPaymentStatusIsValid(t *testing.T) {
	assert.True(t, PaymentPending.IsValid())
	assert.True(t, PaymentPaid.IsValid())
	assert.True(t, PaymentFailed.IsValid())
	assert.False(t, PaymentStatus("refunded").IsValid())
}
