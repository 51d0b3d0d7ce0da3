package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"farm-tracker/internal/domain"
)

func TestPHStatus(t *testing.T) {
	tests := []struct {
		ph   float64
		want domain.HealthStatus
	}{
		{ph: 5.4, want: domain.StatusPoor},
		{ph: 5.5, want: domain.StatusWarning},
		{ph: 5.999, want: domain.StatusWarning},
		{ph: 6.0, want: domain.StatusGood},
		{ph: 7.0, want: domain.StatusGood},
		{ph: 7.5, want: domain.StatusGood},
		{ph: 7.51, want: domain.StatusWarning},
		{ph: 8.0, want: domain.StatusWarning},
		{ph: 8.01, want: domain.StatusPoor},
		{ph: math.NaN(), want: domain.StatusPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PHStatus(tt.ph), "ph=%v", tt.ph)
	}
}

func TestOrganicMatterStatus(t *testing.T) {
	assert.Equal(t, domain.StatusPoor, OrganicMatterStatus(1.99))
	assert.Equal(t, domain.StatusWarning, OrganicMatterStatus(2.0))
	assert.Equal(t, domain.StatusWarning, OrganicMatterStatus(2.99))
	assert.Equal(t, domain.StatusGood, OrganicMatterStatus(3.0))
}

func TestOverallNutrientStatus(t *testing.T) {
	tests := []struct {
		name      string
		p, k, cec float64
		want      domain.HealthStatus
	}{
		{name: "all adequate", p: 20, k: 150, cec: 15, want: domain.StatusGood},
		{name: "exactly adequate", p: 15, k: 100, cec: 10, want: domain.StatusGood},
		{name: "one short", p: 14.9, k: 150, cec: 15, want: domain.StatusWarning},
		{name: "two short", p: 5, k: 50, cec: 15, want: domain.StatusWarning},
		{name: "none adequate", p: 5, k: 50, cec: 5, want: domain.StatusPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallNutrientStatus(tt.p, tt.k, tt.cec))
		})
	}
}

func TestSoilBiologyStatus(t *testing.T) {
	assert.Equal(t, domain.StatusGood, SoilBiologyStatus(4, 6.5))
	assert.Equal(t, domain.StatusWarning, SoilBiologyStatus(4, 5.0))
	assert.Equal(t, domain.StatusWarning, SoilBiologyStatus(1, 6.5))
	assert.Equal(t, domain.StatusPoor, SoilBiologyStatus(1, 5.0))
}

func TestSoilInterpreter_NutrientLevel(t *testing.T) {
	si := NewSoilInterpreter(nil, 0)

	tests := []struct {
		name     string
		nutrient domain.Nutrient
		value    float64
		want     domain.NutrientLevel
	}{
		{name: "phosphorus zero", nutrient: domain.Phosphorus, value: 0, want: domain.LevelLow},
		{name: "phosphorus below medium", nutrient: domain.Phosphorus, value: 14.99, want: domain.LevelLow},
		{name: "phosphorus medium boundary", nutrient: domain.Phosphorus, value: 15, want: domain.LevelMedium},
		{name: "phosphorus high boundary", nutrient: domain.Phosphorus, value: 30, want: domain.LevelHigh},
		{name: "potassium medium", nutrient: domain.Potassium, value: 150, want: domain.LevelMedium},
		{name: "potassium high", nutrient: domain.Potassium, value: 200, want: domain.LevelHigh},
		{name: "cec low", nutrient: domain.CEC, value: 9.9, want: domain.LevelLow},
		{name: "cec high", nutrient: domain.CEC, value: 45, want: domain.LevelHigh},
		{name: "negative is unknown", nutrient: domain.Potassium, value: -1, want: domain.LevelUnknown},
		{name: "NaN is unknown", nutrient: domain.CEC, value: math.NaN(), want: domain.LevelUnknown},
		{name: "unclassified nutrient", nutrient: domain.Nutrient("nitrogen"), value: 10, want: domain.LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, si.NutrientLevel(tt.value, tt.nutrient))
		})
	}
}

func TestTestAgeOf(t *testing.T) {
	now := at(2024, time.June, 15, 14, 0)

	tests := []struct {
		name        string
		testDate    time.Time
		wantDays    int
		wantDisplay string
	}{
		{name: "same day", testDate: at(2024, time.June, 15, 0, 0), wantDays: 0, wantDisplay: "Today"},
		{name: "later the same day", testDate: at(2024, time.June, 15, 20, 0), wantDays: 0, wantDisplay: "Today"},
		{name: "yesterday", testDate: at(2024, time.June, 14, 0, 0), wantDays: 1, wantDisplay: "1 day ago"},
		{name: "three days", testDate: at(2024, time.June, 12, 0, 0), wantDays: 3, wantDisplay: "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age := TestAgeOf(tt.testDate, now)

			assert.Equal(t, tt.wantDays, age.Days)
			assert.Equal(t, tt.wantDisplay, age.Display)
		})
	}
}

func TestSoilInterpreter_IsRecentTest(t *testing.T) {
	now := at(2024, time.June, 15, 9, 0)
	si := NewSoilInterpreter(nil, 0)

	assert.True(t, si.IsRecentTest(now, now))
	assert.True(t, si.IsRecentTest(domain.StartOfDay(now).AddDate(0, 0, -DefaultRecentTestDays), now))
	assert.False(t, si.IsRecentTest(domain.StartOfDay(now).AddDate(0, 0, -DefaultRecentTestDays-1), now))

	short := NewSoilInterpreter(nil, 30)
	assert.False(t, short.IsRecentTest(now.AddDate(0, 0, -31), now))
}

func TestSoilInterpreter_Interpret(t *testing.T) {
	now := at(2024, time.June, 15, 9, 0)
	si := NewSoilInterpreter(nil, 0)

	t.Run("should report a healthy field with no corrective action", func(t *testing.T) {
		// Arrange
		test := domain.SoilTest{
			ID: "st1", FieldID: "f1", TestDate: at(2024, time.June, 12, 0, 0),
			PH: 7.0, OrganicMatter: 4.0, Phosphorus: 20, Potassium: 150, CEC: 12,
		}

		// Act
		report := si.Interpret(test, now)

		// Assert
		assert.Equal(t, domain.StatusGood, report.PHStatus)
		assert.Equal(t, domain.StatusGood, report.OrganicMatter)
		assert.Equal(t, domain.StatusGood, report.NutrientStatus)
		assert.Equal(t, domain.StatusGood, report.BiologyStatus)
		assert.Equal(t, domain.LevelMedium, report.NutrientLevels[domain.Phosphorus])
		assert.Equal(t, domain.LevelMedium, report.NutrientLevels[domain.Potassium])
		assert.Equal(t, domain.LevelMedium, report.NutrientLevels[domain.CEC])
		assert.True(t, report.IsRecent)
		assert.Equal(t, "3 days ago", report.Age.Display)
		assert.Equal(t, now, report.GeneratedAt)
		assert.Len(t, report.Interpretation, 5)
		assert.Equal(t, []string{"No corrective action needed. Maintain current practices."}, report.Recommendations)
	})

	t.Run("should recommend corrections for a depleted acidic field", func(t *testing.T) {
		test := domain.SoilTest{
			TestDate: at(2024, time.June, 1, 0, 0),
			PH:       5.0, OrganicMatter: 1.5, Phosphorus: 5, Potassium: 50, CEC: 5,
		}

		report := si.Interpret(test, now)

		assert.Equal(t, domain.StatusPoor, report.PHStatus)
		assert.Equal(t, domain.StatusPoor, report.NutrientStatus)
		assert.Equal(t, domain.StatusPoor, report.BiologyStatus)
		assert.Contains(t, report.Interpretation[0], "strongly acidic")
		assert.Len(t, report.Recommendations, 5)
		assert.Contains(t, report.Recommendations[0], "lime")
	})

	t.Run("should recommend sulfur for alkaline soil", func(t *testing.T) {
		test := domain.SoilTest{
			TestDate: at(2024, time.June, 1, 0, 0),
			PH:       7.8, OrganicMatter: 4, Phosphorus: 40, Potassium: 250, CEC: 25,
		}

		report := si.Interpret(test, now)

		assert.Equal(t, domain.StatusWarning, report.PHStatus)
		assert.Contains(t, report.Interpretation[0], "slightly alkaline")
		assert.Equal(t, []string{"Apply elemental sulfur or an acidifying fertilizer to lower pH."}, report.Recommendations)
	})

	t.Run("should ask for a resample when the test is stale", func(t *testing.T) {
		test := domain.SoilTest{
			TestDate: at(2020, time.June, 1, 0, 0),
			PH:       6.5, OrganicMatter: 4, Phosphorus: 20, Potassium: 150, CEC: 12,
		}

		report := si.Interpret(test, now)

		assert.False(t, report.IsRecent)
		assert.Len(t, report.Recommendations, 1)
		assert.Contains(t, report.Recommendations[0], "resample")
	})
}
