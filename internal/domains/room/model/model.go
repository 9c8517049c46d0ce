package model

import (
	"time"

	"casitas/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldPropertyID    = "property_id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldBathroomType  = "bathroom_type"
	FieldAvailable     = "available"
	FieldSemester      = "semester"
	FieldAvailableFrom = "available_from"
	FieldAvailableTo   = "available_to"
)

type Room struct {
	ID           string `db:"id"`
	PropertyID   string `db:"property_id"`
	RoomNumber   string `db:"room_number"`
	RoomType     string `db:"room_type"`
	BathroomType string `db:"bathroom_type"`
	// Available mirrors the count of non-terminal bookings on this room.
	// The booking service recomputes it; nothing else writes it.
	Available     bool       `db:"available"`
	Semester      string     `db:"semester"`
	AvailableFrom *time.Time `db:"available_from"`
	AvailableTo   *time.Time `db:"available_to"`
	model.Metadata
}
