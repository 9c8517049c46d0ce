package model

import (
	"time"

	"casitas/shared/model"
)

const (
	TableName  = "inquiries"
	EntityName = "inquiry"

	FieldID          = "id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldMessage     = "message"
	FieldPropertyID  = "property_id"
	FieldRoomID      = "room_id"
	FieldStudentID   = "student_id"
	FieldStatus      = "status"
	FieldRespondedAt = "responded_at"
)

type Inquiry struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Email      string  `db:"email"`
	Phone      string  `db:"phone"`
	Message    string  `db:"message"`
	PropertyID *string `db:"property_id"`
	RoomID     *string `db:"room_id"`
	StudentID  *string `db:"student_id"`
	Status     string  `db:"status"`
	// RespondedAt is stamped once, on the first move out of "new".
	RespondedAt *time.Time `db:"responded_at"`
	model.Metadata
}
