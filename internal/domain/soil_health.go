package domain

import "time"

// HealthStatus is a qualitative rating of one aspect of a soil test.
type HealthStatus string

const (
	StatusGood    HealthStatus = "good"
	StatusWarning HealthStatus = "warning"
	StatusPoor    HealthStatus = "poor"
)

// NutrientLevel classifies a single nutrient reading.
type NutrientLevel string

const (
	LevelLow     NutrientLevel = "Low"
	LevelMedium  NutrientLevel = "Medium"
	LevelHigh    NutrientLevel = "High"
	LevelUnknown NutrientLevel = "Unknown"
)

// Nutrient names a soil reading that is classified by threshold table.
type Nutrient string

const (
	Phosphorus Nutrient = "phosphorus"
	Potassium  Nutrient = "potassium"
	CEC        Nutrient = "cec"
)

// Nutrients lists the classified nutrients in report order.
var Nutrients = []Nutrient{Phosphorus, Potassium, CEC}

// TestAge describes how long ago a soil sample was taken.
type TestAge struct {
	Days    int    `json:"days"`
	Display string `json:"display"`
}

// SoilReport is the interpreted view of a soil test.
type SoilReport struct {
	Test            SoilTest                   `json:"test"`
	PHStatus        HealthStatus               `json:"ph_status"`
	OrganicMatter   HealthStatus               `json:"organic_matter_status"`
	NutrientStatus  HealthStatus               `json:"nutrient_status"`
	BiologyStatus   HealthStatus               `json:"biology_status"`
	NutrientLevels  map[Nutrient]NutrientLevel `json:"nutrient_levels"`
	Interpretation  []string                   `json:"interpretation"`
	Recommendations []string                   `json:"recommendations"`
	Age             TestAge                    `json:"age"`
	IsRecent        bool                       `json:"is_recent"`
	GeneratedAt     time.Time                  `json:"generated_at"`
}
