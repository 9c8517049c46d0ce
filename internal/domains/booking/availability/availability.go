// Package availability is the pure rule engine behind room booking.
// It decides whether a candidate stay conflicts with existing bookings and
// what the derived `available` flag on a room must be. It performs no I/O;
// the booking service feeds it data and persists its results.
package availability

import (
	"casitas/shared/constant"
	"time"
)

// DateRange is a closed [CheckIn, CheckOut] interval of calendar days.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Overlaps reports whether two closed date ranges share at least one day.
// The comparison is inclusive: a candidate whose check-in equals an existing
// check-out conflicts. Same-day turnover is rejected on purpose; see the
// back-to-back policy note in DESIGN.md before changing the operators.
func (r DateRange) Overlaps(other DateRange) bool {
	return !other.CheckIn.After(r.CheckOut) && !other.CheckOut.Before(r.CheckIn)
}

// IsValid reports whether the range is well formed (check-out not before check-in).
func (r DateRange) IsValid() bool {
	return !r.CheckOut.Before(r.CheckIn)
}

// HasConflict reports whether the candidate range overlaps any existing range.
func HasConflict(existing []DateRange, candidate DateRange) bool {
	for _, r := range existing {
		if r.Overlaps(candidate) {
			return true
		}
	}

	return false
}

// ActiveStatuses are the booking statuses that occupy a room.
// Bookings in any other status are terminal and never block dates.
func ActiveStatuses() []string {
	return []string{constant.BookingStatusUpcoming, constant.BookingStatusActive}
}

// IsActiveStatus reports whether a booking status occupies its room.
func IsActiveStatus(status string) bool {
	return status == constant.BookingStatusUpcoming || status == constant.BookingStatusActive
}

// RoomAvailable derives the room's `available` flag from the number of
// bookings in an active status. The flag is a materialized view of that
// count and must never be hand-set.
func RoomAvailable(activeBookings int) bool {
	return activeBookings == 0
}

// CanTransition reports whether a booking status change is allowed:
//
//	upcoming -> active -> completed
//	upcoming -> cancelled
//	active   -> cancelled
//
// A booking never leaves a terminal status, and a no-op transition
// (same status) is permitted so partial updates can resend the field.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}

	switch from {
	case constant.BookingStatusUpcoming:
		return to == constant.BookingStatusActive || to == constant.BookingStatusCancelled
	case constant.BookingStatusActive:
		return to == constant.BookingStatusCompleted || to == constant.BookingStatusCancelled
	default:
		return false
	}
}
