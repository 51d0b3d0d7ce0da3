package domain

import (
	"strings"
	"time"
)

// SoilTest is a point-in-time chemistry sample for a field.
type SoilTest struct {
	ID            string    `json:"id"`
	FieldID       string    `json:"field_id"`
	LabReference  *string   `json:"lab_reference,omitempty"`
	TestDate      time.Time `json:"test_date"`
	PH            float64   `json:"ph"`
	OrganicMatter float64   `json:"organic_matter"` // percent
	Phosphorus    float64   `json:"phosphorus"`     // ppm
	Potassium     float64   `json:"potassium"`      // ppm
	CEC           float64   `json:"cec"`            // meq/100g
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// SoilTestDraft holds the editable fields of a soil test.
type SoilTestDraft struct {
	FieldID       string    `json:"field_id" validate:"required"`
	LabReference  string    `json:"lab_reference" validate:"max=50"`
	TestDate      time.Time `json:"test_date" validate:"required"`
	PH            float64   `json:"ph" validate:"gte=0,lte=14"`
	OrganicMatter float64   `json:"organic_matter" validate:"gte=0,lte=100"`
	Phosphorus    float64   `json:"phosphorus" validate:"gte=0"`
	Potassium     float64   `json:"potassium" validate:"gte=0"`
	CEC           float64   `json:"cec" validate:"gte=0"`
	Notes         string    `json:"notes" validate:"max=2000"`
}

// NewSoilTestDraft starts an edit of st.
func NewSoilTestDraft(st SoilTest) SoilTestDraft {
	d := SoilTestDraft{
		FieldID:       st.FieldID,
		TestDate:      st.TestDate,
		PH:            st.PH,
		OrganicMatter: st.OrganicMatter,
		Phosphorus:    st.Phosphorus,
		Potassium:     st.Potassium,
		CEC:           st.CEC,
		Notes:         st.Notes,
	}
	if st.LabReference != nil {
		d.LabReference = *st.LabReference
	}
	return d
}

// Apply returns a copy of st with the draft's values written over it. The
// owning field is only set on new tests.
func (d SoilTestDraft) Apply(st SoilTest) SoilTest {
	if st.FieldID == "" {
		st.FieldID = d.FieldID
	}
	st.LabReference = nil
	if ref := strings.TrimSpace(d.LabReference); ref != "" {
		st.LabReference = &ref
	}
	st.TestDate = d.TestDate
	st.PH = d.PH
	st.OrganicMatter = d.OrganicMatter
	st.Phosphorus = d.Phosphorus
	st.Potassium = d.Potassium
	st.CEC = d.CEC
	st.Notes = strings.TrimSpace(d.Notes)
	return st
}
