package model

import (
	"time"

	"casitas/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldRoomID     = "room_id"
	FieldGuestName  = "guest_name"
	FieldGuestEmail = "guest_email"
	FieldGuestPhone = "guest_phone"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldStatus     = "status"
	FieldNotes      = "notes"
)

type Booking struct {
	ID         string    `db:"id"`
	RoomID     string    `db:"room_id"`
	GuestName  string    `db:"guest_name"`
	GuestEmail string    `db:"guest_email"`
	GuestPhone string    `db:"guest_phone"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Status     string    `db:"status"`
	Notes      string    `db:"notes"`
	model.Metadata
}
