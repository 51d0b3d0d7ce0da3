package domain

import (
	"strings"
	"time"
)

// Farm is a holding made up of fields.
type Farm struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerName string    `json:"owner_name"`
	Address   string    `json:"address"`
	Acreage   float64   `json:"acreage"`
	CreatedAt time.Time `json:"created_at"`
}

// FarmDraft holds the editable fields of a farm.
type FarmDraft struct {
	Name      string  `json:"name" validate:"required,max=100"`
	OwnerName string  `json:"owner_name" validate:"max=100"`
	Address   string  `json:"address" validate:"max=255"`
	Acreage   float64 `json:"acreage" validate:"gte=0"`
}

// Apply returns a copy of f with the draft's fields written over it.
func (d FarmDraft) Apply(f Farm) Farm {
	f.Name = strings.TrimSpace(d.Name)
	f.OwnerName = strings.TrimSpace(d.OwnerName)
	f.Address = strings.TrimSpace(d.Address)
	f.Acreage = d.Acreage
	return f
}

// Field is a parcel of a farm and the owner of soil tests.
type Field struct {
	ID        string    `json:"id"`
	FarmID    string    `json:"farm_id"`
	Name      string    `json:"name"`
	Acreage   float64   `json:"acreage"`
	CropType  string    `json:"crop_type"`
	SoilType  string    `json:"soil_type"`
	CreatedAt time.Time `json:"created_at"`
}

// FieldDraft holds the editable fields of a field.
type FieldDraft struct {
	FarmID   string  `json:"farm_id" validate:"required"`
	Name     string  `json:"name" validate:"required,max=100"`
	Acreage  float64 `json:"acreage" validate:"gte=0"`
	CropType string  `json:"crop_type" validate:"max=50"`
	SoilType string  `json:"soil_type" validate:"max=50"`
}

// NewFieldDraft starts an edit of f.
func NewFieldDraft(f Field) FieldDraft {
	return FieldDraft{
		FarmID:   f.FarmID,
		Name:     f.Name,
		Acreage:  f.Acreage,
		CropType: f.CropType,
		SoilType: f.SoilType,
	}
}

// Apply returns a copy of f with the draft's fields written over it. The
// owning farm is only set on new fields.
func (d FieldDraft) Apply(f Field) Field {
	if f.FarmID == "" {
		f.FarmID = d.FarmID
	}
	f.Name = strings.TrimSpace(d.Name)
	f.Acreage = d.Acreage
	f.CropType = strings.TrimSpace(d.CropType)
	f.SoilType = strings.TrimSpace(d.SoilType)
	return f
}
