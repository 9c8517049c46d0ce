// Package policy holds the ownership checks used before any property,
// room or booking mutation. The rules are pure predicates so every handler
// shares one definition instead of repeating inline owner comparisons.
package policy

// CanMutateProperty reports whether the caller may mutate a property.
//
// Properties imported from the legacy listing system carry no owner and stay
// editable by any authenticated owner until claimed. That transitional rule is
// intentional; tightening it to an explicit claim flow is tracked in DESIGN.md.
func CanMutateProperty(ownerID *string, callerID string) bool {
	if ownerID == nil || *ownerID == "" {
		return true
	}

	return *ownerID == callerID
}

// CanMutateRoom applies the owning property's rule to a room.
func CanMutateRoom(propertyOwnerID *string, callerID string) bool {
	return CanMutateProperty(propertyOwnerID, callerID)
}

// CanMutateBooking applies the owning property's rule to a booking,
// via the room the booking belongs to.
func CanMutateBooking(propertyOwnerID *string, callerID string) bool {
	return CanMutateProperty(propertyOwnerID, callerID)
}
