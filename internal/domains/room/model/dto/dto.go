package dto

import (
	"time"

	"casitas/internal/domains/room/model"
	"casitas/shared"
	"casitas/shared/constant"
	gDto "casitas/shared/dto"
	gModel "casitas/shared/model"
	"casitas/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	PropertyID    string `json:"property_id"    validate:"required,uuid"`
	RoomNumber    string `json:"room_number"    validate:"required,max=20"`
	RoomType      string `json:"room_type"      validate:"required,oneof=private shared"`
	BathroomType  string `json:"bathroom_type"  validate:"required,oneof=private shared"`
	Semester      string `json:"semester"       validate:"omitempty,max=50"`
	AvailableFrom string `json:"available_from" validate:"omitempty,datetime=2006-01-02"`
	AvailableTo   string `json:"available_to"   validate:"omitempty,datetime=2006-01-02"`
}

func (c *CreateRoomRequest) ToModel(user string) (model.Room, error) {
	var availableFrom, availableTo *time.Time

	if c.AvailableFrom != "" {
		from, err := time.Parse(constant.DateOnlyFormat, c.AvailableFrom)
		if err != nil {
			return model.Room{}, err
		}
		availableFrom = &from
	}

	if c.AvailableTo != "" {
		to, err := time.Parse(constant.DateOnlyFormat, c.AvailableTo)
		if err != nil {
			return model.Room{}, err
		}
		availableTo = &to
	}

	return model.Room{
		ID:            uuid.NewString(),
		PropertyID:    c.PropertyID,
		RoomNumber:    c.RoomNumber,
		RoomType:      c.RoomType,
		BathroomType:  c.BathroomType,
		Available:     true,
		Semester:      c.Semester,
		AvailableFrom: availableFrom,
		AvailableTo:   availableTo,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// UpdateRoomRequest deliberately has no `available` field: the flag is
// derived from bookings and only the booking service writes it.
type UpdateRoomRequest struct {
	RoomNumber    string `db:"room_number"   json:"room_number"    validate:"omitempty,max=20"`
	RoomType      string `db:"room_type"     json:"room_type"      validate:"omitempty,oneof=private shared"`
	BathroomType  string `db:"bathroom_type" json:"bathroom_type"  validate:"omitempty,oneof=private shared"`
	Semester      string `db:"semester"      json:"semester"       validate:"omitempty,max=50"`
	AvailableFrom string `json:"available_from" validate:"omitempty,datetime=2006-01-02"`
	AvailableTo   string `json:"available_to"   validate:"omitempty,datetime=2006-01-02"`
}

type RoomResponse struct {
	ID            string `json:"id"`
	PropertyID    string `json:"property_id"`
	RoomNumber    string `json:"room_number"`
	RoomType      string `json:"room_type"`
	BathroomType  string `json:"bathroom_type"`
	Available     bool   `json:"available"`
	Semester      string `json:"semester"`
	AvailableFrom string `json:"available_from,omitempty"`
	AvailableTo   string `json:"available_to,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.PropertyID = model.PropertyID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.BathroomType = model.BathroomType
	r.Available = model.Available
	r.Semester = model.Semester

	if model.AvailableFrom != nil {
		r.AvailableFrom = model.AvailableFrom.Format(constant.DateOnlyFormat)
	}

	if model.AvailableTo != nil {
		r.AvailableTo = model.AvailableTo.Format(constant.DateOnlyFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, m := range models {
		r.Rooms[i].FromModel(m)
	}
}
