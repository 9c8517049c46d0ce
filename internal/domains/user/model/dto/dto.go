package dto

import (
	"casitas/internal/domains/user/model"
	gDto "casitas/shared/dto"
)

// UpdateProfileRequest is the self-service profile update. Email, role and
// the active flag are off limits here.
type UpdateProfileRequest struct {
	FullName   string  `db:"full_name"  json:"full_name"  validate:"omitempty,min=2,max=100"`
	Phone      string  `db:"phone"      json:"phone"      validate:"omitempty,max=20"`
	University *string `db:"university" json:"university" validate:"omitempty,max=150"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Phone      string  `json:"phone"`
	Role       string  `json:"role"`
	University *string `json:"university"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.FullName = user.FullName
	r.Phone = user.Phone
	r.Role = user.Role
	r.University = user.University
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)
}
