package dto

import (
	"mime/multipart"

	"casitas/internal/domains/property/model"
	"casitas/shared"
	gDto "casitas/shared/dto"
	gModel "casitas/shared/model"
	"casitas/shared/timezone"

	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Slug          string   `json:"slug"           validate:"required,max=120,lowercase"`
	NameEs        string   `json:"name_es"        validate:"required,max=150"`
	NameEn        string   `json:"name_en"        validate:"required,max=150"`
	DescriptionEs string   `json:"description_es" validate:"omitempty"`
	DescriptionEn string   `json:"description_en" validate:"omitempty"`
	LocationEs    string   `json:"location_es"    validate:"omitempty,max=150"`
	LocationEn    string   `json:"location_en"    validate:"omitempty,max=150"`
	Address       string   `json:"address"        validate:"omitempty,max=250"`
	Latitude      float64  `json:"latitude"       validate:"omitempty,latitude"`
	Longitude     float64  `json:"longitude"      validate:"omitempty,longitude"`
	Zone          string   `json:"zone"           validate:"required,oneof=tres-cruces centro cholula"`
	University    string   `json:"university"     validate:"omitempty,max=150"`
	Images        []string `json:"images"         validate:"omitempty,dive,url"`
	Available     *bool    `json:"available"      validate:"omitempty"`
}

func (c *CreatePropertyRequest) ToModel(user string) model.Property {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	var ownerID *string
	if user != "" {
		owner := user
		ownerID = &owner
	}

	return model.Property{
		ID:            uuid.NewString(),
		Slug:          c.Slug,
		NameEs:        c.NameEs,
		NameEn:        c.NameEn,
		DescriptionEs: c.DescriptionEs,
		DescriptionEn: c.DescriptionEn,
		LocationEs:    c.LocationEs,
		LocationEn:    c.LocationEn,
		Address:       c.Address,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		Zone:          c.Zone,
		University:    c.University,
		Images:        c.Images,
		Available:     available,
		OwnerID:       ownerID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePropertyRequest struct {
	NameEs        string   `db:"name_es"        json:"name_es"        validate:"omitempty,max=150"`
	NameEn        string   `db:"name_en"        json:"name_en"        validate:"omitempty,max=150"`
	DescriptionEs string   `db:"description_es" json:"description_es" validate:"omitempty"`
	DescriptionEn string   `db:"description_en" json:"description_en" validate:"omitempty"`
	LocationEs    string   `db:"location_es"    json:"location_es"    validate:"omitempty,max=150"`
	LocationEn    string   `db:"location_en"    json:"location_en"    validate:"omitempty,max=150"`
	Address       string   `db:"address"        json:"address"        validate:"omitempty,max=250"`
	Latitude      *float64 `db:"latitude"       json:"latitude"       validate:"omitempty,latitude"`
	Longitude     *float64 `db:"longitude"      json:"longitude"      validate:"omitempty,longitude"`
	Zone          string   `db:"zone"           json:"zone"           validate:"omitempty,oneof=tres-cruces centro cholula"`
	University    string   `db:"university"     json:"university"     validate:"omitempty,max=150"`
	Images        []string `db:"images"         json:"images"         validate:"omitempty,dive,url"`
	Available     *bool    `db:"available"      json:"available"      validate:"omitempty"`
}

type PropertyResponse struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	NameEs        string   `json:"name_es"`
	NameEn        string   `json:"name_en"`
	DescriptionEs string   `json:"description_es"`
	DescriptionEn string   `json:"description_en"`
	LocationEs    string   `json:"location_es"`
	LocationEn    string   `json:"location_en"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Zone          string   `json:"zone"`
	University    string   `json:"university"`
	Images        []string `json:"images"`
	Available     bool     `json:"available"`
	OwnerID       *string  `json:"owner_id"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(model model.Property) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.NameEs = model.NameEs
	r.NameEn = model.NameEn
	r.DescriptionEs = model.DescriptionEs
	r.DescriptionEn = model.DescriptionEn
	r.LocationEs = model.LocationEs
	r.LocationEn = model.LocationEn
	r.Address = model.Address
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.Zone = model.Zone
	r.University = model.University
	r.Images = model.Images
	r.Available = model.Available
	r.OwnerID = model.OwnerID
	r.Metadata.FromModel(model.Metadata)
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Properties = make([]PropertyResponse, len(models))
	for i, m := range models {
		r.Properties[i].FromModel(m)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

type DeleteImagesRequest struct {
	ImageURLs []string `json:"image_urls" validate:"required,min=1,dive,url"`
}
