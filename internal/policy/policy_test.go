package policy_test

import (
	"casitas/internal/policy"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutateProperty(t *testing.T) {
	ownerA := "owner-a"
	empty := ""

	tests := []struct {
		name     string
		ownerID  *string
		callerID string
		want     bool
	}{
		{
			name:     "unclaimed legacy property is editable by anyone",
			ownerID:  nil,
			callerID: "owner-b",
			want:     true,
		},
		{
			name:     "empty owner id treated as unclaimed",
			ownerID:  &empty,
			callerID: "owner-b",
			want:     true,
		},
		{
			name:     "owner can mutate own property",
			ownerID:  &ownerA,
			callerID: "owner-a",
			want:     true,
		},
		{
			name:     "other owner is denied",
			ownerID:  &ownerA,
			callerID: "owner-b",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanMutateProperty(tt.ownerID, tt.callerID))
		})
	}
}

func TestGuardPropagation(t *testing.T) {
	ownerA := "owner-a"

	// Rooms and bookings inherit the owning property's rule.
	assert.True(t, policy.CanMutateRoom(nil, "owner-b"))
	assert.True(t, policy.CanMutateRoom(&ownerA, "owner-a"))
	assert.False(t, policy.CanMutateRoom(&ownerA, "owner-b"))

	assert.True(t, policy.CanMutateBooking(nil, "owner-b"))
	assert.True(t, policy.CanMutateBooking(&ownerA, "owner-a"))
	assert.False(t, policy.CanMutateBooking(&ownerA, "owner-b"))
}
