package model

import (
	"casitas/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID            = "id"
	FieldSlug          = "slug"
	FieldNameEs        = "name_es"
	FieldNameEn        = "name_en"
	FieldDescriptionEs = "description_es"
	FieldDescriptionEn = "description_en"
	FieldLocationEs    = "location_es"
	FieldLocationEn    = "location_en"
	FieldAddress       = "address"
	FieldLatitude      = "latitude"
	FieldLongitude     = "longitude"
	FieldZone          = "zone"
	FieldUniversity    = "university"
	FieldImages        = "images"
	FieldAvailable     = "available"
	FieldOwnerID       = "owner_id"
)

type Property struct {
	ID            string         `db:"id"`
	Slug          string         `db:"slug"`
	NameEs        string         `db:"name_es"`
	NameEn        string         `db:"name_en"`
	DescriptionEs string         `db:"description_es"`
	DescriptionEn string         `db:"description_en"`
	LocationEs    string         `db:"location_es"`
	LocationEn    string         `db:"location_en"`
	Address       string         `db:"address"`
	Latitude      float64        `db:"latitude"`
	Longitude     float64        `db:"longitude"`
	Zone          string         `db:"zone"`
	University    string         `db:"university"`
	Images        pq.StringArray `db:"images"`
	Available     bool           `db:"available"`
	// OwnerID is NULL for listings imported before accounts existed.
	OwnerID *string `db:"owner_id"`
	model.Metadata
}
