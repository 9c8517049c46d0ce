package dto

import (
	"casitas/internal/domains/inquiry/model"
	"casitas/shared"
	"casitas/shared/constant"
	gDto "casitas/shared/dto"
	gModel "casitas/shared/model"
	"casitas/shared/timezone"

	"github.com/google/uuid"
)

type CreateInquiryRequest struct {
	Name       string  `json:"name"        validate:"required,max=100"`
	Email      string  `json:"email"       validate:"required,email,max=100"`
	Phone      string  `json:"phone"       validate:"omitempty,max=20"`
	Message    string  `json:"message"     validate:"required"`
	PropertyID *string `json:"property_id" validate:"omitempty,uuid"`
	RoomID     *string `json:"room_id"     validate:"omitempty,uuid"`
}

func (c *CreateInquiryRequest) ToModel(user string) model.Inquiry {
	var studentID *string
	if user != "" && user != constant.ContextGuest {
		id := user
		studentID = &id
	}

	createdBy := user
	if createdBy == "" {
		createdBy = constant.ContextGuest
	}

	return model.Inquiry{
		ID:         uuid.NewString(),
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Message:    c.Message,
		PropertyID: c.PropertyID,
		RoomID:     c.RoomID,
		StudentID:  studentID,
		Status:     constant.InquiryStatusNew,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted documents reviewing approved payment confirmed rejected archived"`
}

type InquiryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Message     string  `json:"message"`
	PropertyID  *string `json:"property_id"`
	RoomID      *string `json:"room_id"`
	StudentID   *string `json:"student_id"`
	Status      string  `json:"status"`
	RespondedAt string  `json:"responded_at,omitempty"`
	gDto.Metadata
}

func (r *InquiryResponse) FromModel(model model.Inquiry) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Message = model.Message
	r.PropertyID = model.PropertyID
	r.RoomID = model.RoomID
	r.StudentID = model.StudentID
	r.Status = model.Status

	if model.RespondedAt != nil {
		r.RespondedAt = timezone.Format(*model.RespondedAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetInquiriesResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInquiriesResponse) FromModels(models []model.Inquiry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Inquiries = make([]InquiryResponse, len(models))
	for i, m := range models {
		r.Inquiries[i].FromModel(m)
	}
}

const (
	EventInquiryCreated       = "inquiry.created"
	EventInquiryStatusChanged = "inquiry.status_changed"
)

// InquiryEvent is the payload published to the inquiries topic.
type InquiryEvent struct {
	Type       string  `json:"type"`
	InquiryID  string  `json:"inquiry_id"`
	PropertyID *string `json:"property_id"`
	RoomID     *string `json:"room_id"`
	Status     string  `json:"status"`
	OccurredAt string  `json:"occurred_at"`
}

func NewInquiryEvent(eventType string, inquiry model.Inquiry) InquiryEvent {
	return InquiryEvent{
		Type:       eventType,
		InquiryID:  inquiry.ID,
		PropertyID: inquiry.PropertyID,
		RoomID:     inquiry.RoomID,
		Status:     inquiry.Status,
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
}
